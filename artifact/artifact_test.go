package artifact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twizmwazin/yodalib/artifact"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind artifact.Kind
		want string
	}{
		{artifact.KindFunction, "function"},
		{artifact.KindFunctionHeader, "function_header"},
		{artifact.KindStackVariable, "stack_variable"},
		{artifact.KindGlobalVariable, "global_variable"},
		{artifact.KindStruct, "struct"},
		{artifact.KindEnum, "enum"},
		{artifact.KindComment, "comment"},
		{artifact.KindPatch, "patch"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestParseKind(t *testing.T) {
	for k := artifact.KindFunction; k <= artifact.KindPatch; k++ {
		parsed, err := artifact.ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := artifact.ParseKind("symbol")
	assert.ErrorIs(t, err, artifact.ErrInvalid)
}

func TestFunction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fn      *artifact.Function
		wantErr bool
	}{
		{
			name: "header inside range",
			fn: &artifact.Function{
				Addr:   0x400000,
				Size:   0x40,
				Header: &artifact.FunctionHeader{Name: "main", Addr: 0x400000},
			},
			wantErr: false,
		},
		{
			name: "header outside range",
			fn: &artifact.Function{
				Addr:   0x400000,
				Size:   0x40,
				Header: &artifact.FunctionHeader{Name: "main", Addr: 0x400040},
			},
			wantErr: true,
		},
		{
			name: "zero size requires header at start",
			fn: &artifact.Function{
				Addr:   0x400000,
				Header: &artifact.FunctionHeader{Name: "main", Addr: 0x400000},
			},
			wantErr: false,
		},
		{
			name: "zero size rejects header elsewhere",
			fn: &artifact.Function{
				Addr:   0x400000,
				Header: &artifact.FunctionHeader{Name: "main", Addr: 0x400008},
			},
			wantErr: true,
		},
		{
			name: "stack variable keyed consistently",
			fn: &artifact.Function{
				Addr: 0x400000, Size: 0x40,
				StackVars: map[int64]*artifact.StackVariable{
					-8: {FuncAddr: 0x400000, Offset: -8, Name: "counter"},
				},
			},
			wantErr: false,
		},
		{
			name: "stack variable keyed at wrong offset",
			fn: &artifact.Function{
				Addr: 0x400000, Size: 0x40,
				StackVars: map[int64]*artifact.StackVariable{
					-16: {FuncAddr: 0x400000, Offset: -8, Name: "counter"},
				},
			},
			wantErr: true,
		},
		{
			name: "stack variable owned by another function",
			fn: &artifact.Function{
				Addr: 0x400000, Size: 0x40,
				StackVars: map[int64]*artifact.StackVariable{
					-8: {FuncAddr: 0x500000, Offset: -8, Name: "counter"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, artifact.ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStruct_Validate(t *testing.T) {
	s := &artifact.Struct{Name: "point", Size: 8}
	s.AddMember(&artifact.StructMember{Name: "x", Offset: 0, Type: "int", Size: 4})
	s.AddMember(&artifact.StructMember{Name: "y", Offset: 4, Type: "int", Size: 4})
	assert.NoError(t, s.Validate())

	outside := &artifact.Struct{Name: "point", Size: 8}
	outside.AddMember(&artifact.StructMember{Name: "z", Offset: 8, Type: "int", Size: 4})
	assert.ErrorIs(t, outside.Validate(), artifact.ErrInvalid)

	dup := &artifact.Struct{Name: "point"}
	dup.Members = []*artifact.StructMember{
		{Name: "x", Offset: 0},
		{Name: "also_x", Offset: 0},
	}
	assert.ErrorIs(t, dup.Validate(), artifact.ErrInvalid)
}

func TestValidate_EnumValueAliasing(t *testing.T) {
	aliased := &artifact.Enum{
		Name:    "win_error",
		Members: map[string]int64{"ERROR_SUCCESS": 0, "NO_ERROR": 0, "ERROR_INVALID_FUNCTION": 1},
	}
	assert.NoError(t, artifact.Validate(aliased))
}

func TestPatch_Validate(t *testing.T) {
	assert.NoError(t, (&artifact.Patch{Addr: 0x1000, Bytes: []byte{0x90}}).Validate())
	assert.ErrorIs(t, (&artifact.Patch{Addr: 0x1000}).Validate(), artifact.ErrInvalid)
}

func TestFunction_CopyIsDeep(t *testing.T) {
	fn := &artifact.Function{
		Addr: 0x400000, Size: 0x40,
		Header: &artifact.FunctionHeader{
			Name: "main", Addr: 0x400000, ReturnType: "int",
			Args: []*artifact.FunctionArgument{{Name: "argc", Type: "int", Size: 4}},
		},
		StackVars: map[int64]*artifact.StackVariable{
			-8: {FuncAddr: 0x400000, Offset: -8, Name: "counter", Type: "int"},
		},
	}

	cp := fn.Copy().(*artifact.Function)
	assert.True(t, fn.Equal(cp))

	cp.Header.Name = "renamed"
	cp.Header.Args[0].Name = "renamed_arg"
	cp.StackVars[-8].Name = "renamed_var"

	assert.Equal(t, "main", fn.Header.Name)
	assert.Equal(t, "argc", fn.Header.Args[0].Name)
	assert.Equal(t, "counter", fn.StackVars[-8].Name)
}

func TestEqual_IgnoresFull(t *testing.T) {
	a := artifact.FunctionStub(0x400000, 0x40, "main")
	b := artifact.FunctionStub(0x400000, 0x40, "main")
	b.Full = true
	assert.True(t, a.Equal(b))
}

func TestEqual_RejectsOtherKinds(t *testing.T) {
	fn := artifact.FunctionStub(0x400000, 0x40, "main")
	cmt := &artifact.Comment{Addr: 0x400000, Text: "entry"}
	assert.False(t, fn.Equal(cmt))
	assert.False(t, cmt.Equal(fn))
}

func TestStruct_MemberAt(t *testing.T) {
	s := &artifact.Struct{Name: "header"}
	s.Members = []*artifact.StructMember{
		{Name: "magic", Offset: 0, Size: 4},
		{Name: "version", Offset: 4, Size: 2},
	}

	m, ok := s.MemberAt(4)
	assert.True(t, ok)
	assert.Equal(t, "version", m.Name)

	_, ok = s.MemberAt(16)
	assert.False(t, ok)
}
