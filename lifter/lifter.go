// Package lifter converts artifacts between a backend's native view and
// the canonical view shared by every backend. Lifting rebases addresses,
// renames types and normalizes stack offsets on the way in; lowering is
// the exact inverse on the way out.
package lifter

// Lifter translates the scalar fields of artifacts. LiftAddr and LowerAddr
// must be inverses of each other, as must LiftType/LowerType for every
// type name the implementation knows; unknown type names pass through
// unchanged in both directions. The funcAddr handed to the stack offset
// methods is always the native address of the owning function.
type Lifter interface {
	LiftAddr(addr uint64) uint64
	LowerAddr(addr uint64) uint64
	LiftType(name string) string
	LowerType(name string) string
	LiftStackOffset(offset int64, funcAddr uint64) int64
	LowerStackOffset(offset int64, funcAddr uint64) int64
}

// Identity is a Lifter that changes nothing. Backends whose native view
// already matches the canonical one use it directly.
type Identity struct{}

func (Identity) LiftAddr(addr uint64) uint64  { return addr }
func (Identity) LowerAddr(addr uint64) uint64 { return addr }
func (Identity) LiftType(name string) string  { return name }
func (Identity) LowerType(name string) string { return name }

func (Identity) LiftStackOffset(offset int64, funcAddr uint64) int64  { return offset }
func (Identity) LowerStackOffset(offset int64, funcAddr uint64) int64 { return offset }
