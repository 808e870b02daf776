package ctype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twizmwazin/yodalib/ctype"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		descriptor string
		want       ctype.Type
	}{
		{
			descriptor: "int",
			want:       ctype.Type{Base: "int", Primitive: true},
		},
		{
			descriptor: "unsigned long long",
			want:       ctype.Type{Base: "unsigned long long", Primitive: true},
		},
		{
			descriptor: "char *",
			want:       ctype.Type{Base: "char", Primitive: true, Pointers: 1},
		},
		{
			descriptor: "char **",
			want:       ctype.Type{Base: "char", Primitive: true, Pointers: 2},
		},
		{
			descriptor: "struct in_addr",
			want:       ctype.Type{Base: "in_addr", IsStruct: true},
		},
		{
			descriptor: "struct Foo *",
			want:       ctype.Type{Base: "Foo", IsStruct: true, Pointers: 1},
		},
		{
			descriptor: "enum color",
			want:       ctype.Type{Base: "color", IsEnum: true},
		},
		{
			descriptor: "union reg_value",
			want:       ctype.Type{Base: "reg_value", IsUnion: true},
		},
		{
			descriptor: "MyType",
			want:       ctype.Type{Base: "MyType"},
		},
		{
			descriptor: "__int64",
			want:       ctype.Type{Base: "__int64", Primitive: true},
		},
		{
			descriptor: "_DWORD *",
			want:       ctype.Type{Base: "_DWORD", Primitive: true, Pointers: 1},
		},
		{
			descriptor: "undefined8",
			want:       ctype.Type{Base: "undefined8", Primitive: true},
		},
		{
			descriptor: "char[16]",
			want:       ctype.Type{Base: "char", Primitive: true, IsArray: true, ArrayLen: 16},
		},
		{
			descriptor: "void (*)(int)",
			want:       ctype.Type{Base: "void", Primitive: true, IsFunc: true, Pointers: 1},
		},
	}

	parser := ctype.NewParser()
	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			got, ok := parser.Parse(tt.descriptor)
			require.True(t, ok, "expected %q to parse", tt.descriptor)
			tt.want.Raw = tt.descriptor
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParser_Parse_Rejects(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"not a valid type <<<",
		"%%%",
		"struct",
		"123",
	}

	parser := ctype.NewParser()
	for _, descriptor := range tests {
		t.Run(descriptor, func(t *testing.T) {
			got, ok := parser.Parse(descriptor)
			assert.False(t, ok, "expected %q to be rejected", descriptor)
			assert.Nil(t, got)
		})
	}
}

func TestType_UserDefined(t *testing.T) {
	parser := ctype.NewParser()

	userDefined, ok := parser.Parse("struct Foo")
	require.True(t, ok)
	assert.True(t, userDefined.UserDefined())

	builtin, ok := parser.Parse("int")
	require.True(t, ok)
	assert.False(t, builtin.UserDefined())

	idaBuiltin, ok := parser.Parse("__int64")
	require.True(t, ok)
	assert.False(t, idaBuiltin.UserDefined())
}
