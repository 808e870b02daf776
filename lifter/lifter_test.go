package lifter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twizmwazin/yodalib/artifact"
	"github.com/twizmwazin/yodalib/lifter"
)

func TestBase_AddrRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		base uint64
		addr uint64
	}{
		{name: "above base", base: 0x400000, addr: 0x401234},
		{name: "at base", base: 0x400000, addr: 0x400000},
		{name: "below base wraps", base: 0x555555554000, addr: 0x1000},
		{name: "zero base", base: 0, addr: 0xdeadbeef},
		{name: "max base", base: ^uint64(0), addr: 0x400000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lifter.New(tt.base, nil)
			lifted := l.LiftAddr(tt.addr)
			assert.Equal(t, tt.addr, l.LowerAddr(lifted))
			assert.Equal(t, lifted, l.LiftAddr(l.LowerAddr(lifted)))
		})
	}
}

func TestBase_TypeTable(t *testing.T) {
	l := lifter.New(0, map[string]string{
		"__int64":       "long long",
		"_DWORD":        "unsigned int",
		"unsigned __i8": "unsigned char",
	})

	assert.Equal(t, "long long", l.LiftType("__int64"))
	assert.Equal(t, "__int64", l.LowerType("long long"))
	assert.Equal(t, "unsigned int", l.LiftType("_DWORD"))

	// names outside the table pass through both ways
	assert.Equal(t, "struct point", l.LiftType("struct point"))
	assert.Equal(t, "struct point", l.LowerType("struct point"))
}

func TestLiftLower_Function(t *testing.T) {
	l := lifter.New(0x400000, map[string]string{"_DWORD": "unsigned int"})

	native := &artifact.Function{
		Addr: 0x401000, Size: 0x40,
		Header: &artifact.FunctionHeader{
			Name: "main", Addr: 0x401000, ReturnType: "_DWORD",
			Args: []*artifact.FunctionArgument{{Name: "argc", Type: "_DWORD", Size: 4}},
		},
		StackVars: map[int64]*artifact.StackVariable{
			-8: {FuncAddr: 0x401000, Offset: -8, Name: "counter", Type: "_DWORD", Size: 4},
		},
	}

	lifted := lifter.Lift(l, native).(*artifact.Function)
	assert.Equal(t, uint64(0x1000), lifted.Addr)
	assert.Equal(t, uint64(0x1000), lifted.Header.Addr)
	assert.Equal(t, "unsigned int", lifted.Header.ReturnType)
	assert.Equal(t, "unsigned int", lifted.Header.Args[0].Type)
	assert.Equal(t, uint64(0x1000), lifted.StackVars[-8].FuncAddr)
	assert.Equal(t, "unsigned int", lifted.StackVars[-8].Type)

	// input untouched
	assert.Equal(t, uint64(0x401000), native.Addr)
	assert.Equal(t, "_DWORD", native.Header.ReturnType)

	lowered := lifter.Lower(l, lifted).(*artifact.Function)
	assert.True(t, native.Equal(lowered))
}

func TestLiftLower_OtherKinds(t *testing.T) {
	l := lifter.New(0x10000, nil)

	tests := []artifact.Artifact{
		&artifact.GlobalVariable{Addr: 0x11000, Name: "g_state", Type: "int"},
		&artifact.Comment{Addr: 0x11010, Text: "entry"},
		&artifact.Patch{Addr: 0x11020, Bytes: []byte{0x90}},
		&artifact.Struct{
			Name:    "point",
			Members: []*artifact.StructMember{{Name: "x", Offset: 0, Type: "int"}},
		},
		&artifact.Enum{Name: "color", Members: map[string]int64{"red": 0}},
	}

	for _, a := range tests {
		t.Run(a.Kind().String(), func(t *testing.T) {
			lowered := lifter.Lower(l, lifter.Lift(l, a))
			assert.True(t, a.Equal(lowered))
		})
	}
}

// negatingLifter flips stack offsets, standing in for a backend whose
// frame offsets grow the other way.
type negatingLifter struct {
	lifter.Identity
	funcAddrs []uint64
}

func (n *negatingLifter) LiftStackOffset(offset int64, funcAddr uint64) int64 {
	n.funcAddrs = append(n.funcAddrs, funcAddr)
	return -offset
}

func (n *negatingLifter) LowerStackOffset(offset int64, funcAddr uint64) int64 {
	n.funcAddrs = append(n.funcAddrs, funcAddr)
	return -offset
}

func TestLift_StackOffsetGetsNativeFuncAddr(t *testing.T) {
	l := &negatingLifter{}
	native := &artifact.Function{
		Addr: 0x401000, Size: 0x40,
		StackVars: map[int64]*artifact.StackVariable{
			8: {FuncAddr: 0x401000, Offset: 8, Name: "saved"},
		},
	}

	lifted := lifter.Lift(l, native).(*artifact.Function)
	assert.NotNil(t, lifted.StackVars[-8])
	assert.Equal(t, []uint64{0x401000}, l.funcAddrs)

	lowered := lifter.Lower(l, lifted).(*artifact.Function)
	assert.True(t, native.Equal(lowered))
	assert.Equal(t, []uint64{0x401000, 0x401000}, l.funcAddrs)
}

func TestIdentity(t *testing.T) {
	var l lifter.Lifter = lifter.Identity{}
	assert.Equal(t, uint64(0x401000), l.LiftAddr(0x401000))
	assert.Equal(t, "int", l.LowerType("int"))
	assert.Equal(t, int64(-8), l.LiftStackOffset(-8, 0x401000))
}
