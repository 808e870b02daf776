package artifact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twizmwazin/yodalib/artifact"
)

func sampleFunction() *artifact.Function {
	return &artifact.Function{
		Addr: 0x400000, Size: 0x40, Name: "main",
		Header: &artifact.FunctionHeader{
			Name: "main", Addr: 0x400000, ReturnType: "int",
			Args: []*artifact.FunctionArgument{
				{Name: "argc", Type: "int", Size: 4},
				{Name: "argv", Type: "char **", Size: 8},
			},
		},
		StackVars: map[int64]*artifact.StackVariable{
			-8:  {FuncAddr: 0x400000, Offset: -8, Name: "counter", Type: "int", Size: 4},
			-16: {FuncAddr: 0x400000, Offset: -16, Name: "buf", Type: "char *", Size: 8},
		},
	}
}

func TestEncodeDecodeTOML(t *testing.T) {
	tests := []struct {
		name string
		in   artifact.Artifact
	}{
		{name: "function", in: sampleFunction()},
		{
			name: "global variable",
			in:   &artifact.GlobalVariable{Addr: 0x601000, Name: "g_state", Type: "int", Size: 4},
		},
		{
			name: "struct",
			in: &artifact.Struct{
				Name: "point", Size: 8,
				Members: []*artifact.StructMember{
					{Name: "x", Offset: 0, Type: "int", Size: 4},
					{Name: "y", Offset: 4, Type: "int", Size: 4},
				},
			},
		},
		{
			name: "enum",
			in:   &artifact.Enum{Name: "color", Members: map[string]int64{"red": 0, "green": 1, "blue": 2}},
		},
		{
			name: "comment",
			in:   &artifact.Comment{Addr: 0x400010, Text: "decrypts the config blob", Decompiled: true},
		},
		{
			name: "patch",
			in:   &artifact.Patch{Addr: 0x400020, Bytes: []byte{0x90, 0x90, 0xc3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := artifact.EncodeTOML(tt.in)
			require.NoError(t, err)

			out, err := artifact.DecodeTOML(tt.in.Kind(), data)
			require.NoError(t, err)
			assert.True(t, tt.in.Equal(out), "decoded artifact differs:\n%s", data)
		})
	}
}

func TestDecodeTOML_UnknownKind(t *testing.T) {
	_, err := artifact.DecodeTOML(artifact.Kind(99), []byte(""))
	assert.ErrorIs(t, err, artifact.ErrInvalid)
}

func TestHash_StableAcrossEqualArtifacts(t *testing.T) {
	h1, err := artifact.Hash(sampleFunction())
	require.NoError(t, err)
	h2, err := artifact.Hash(sampleFunction())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	renamed := sampleFunction()
	renamed.Header.Name = "not_main"
	h3, err := artifact.Hash(renamed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/artifacts/main.toml"

	fn := sampleFunction()
	require.NoError(t, artifact.Save(ctx, URL, fn))

	loaded, err := artifact.Load(ctx, URL, artifact.KindFunction)
	require.NoError(t, err)
	assert.True(t, fn.Equal(loaded))
}
