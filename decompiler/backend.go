// Package decompiler is the synchronization core between a decompiler and
// the canonical artifact model. A Backend adapter translates one concrete
// decompiler into the contract below; the Interface facade layers lifting,
// per-kind tables, dispatch and re-entrancy protection on top, so tooling
// written against it runs unchanged on any backend.
package decompiler

import (
	"errors"
	"sort"

	"github.com/twizmwazin/yodalib/artifact"
)

var (
	// ErrDuplicateArtifact reports a table insert that would overwrite an
	// existing key with a different value while duplicates are rejected.
	ErrDuplicateArtifact = errors.New("artifact already registered")

	// ErrUnsupported reports an operation the backend does not implement.
	ErrUnsupported = errors.New("not supported by this backend")
)

// Backend is the adapter contract for one concrete decompiler. Every
// method speaks the decompiler's native view: native addresses, native
// type spellings, native stack offsets. All operations are optional;
// embed UnimplementedBackend to pick up safe defaults for the rest and
// stay compatible as the contract grows.
//
// Enumerators return lightweight existence stubs (Full left false) keyed
// natively; full getters return complete artifacts and report absence via
// the second return; setters report whether the decompiler state actually
// changed.
type Backend interface {
	Functions() map[uint64]*artifact.Function
	StackVariables() map[artifact.StackKey]*artifact.StackVariable
	GlobalVariables() map[uint64]*artifact.GlobalVariable
	Structs() map[string]*artifact.Struct
	Enums() map[string]*artifact.Enum
	Comments() map[uint64]*artifact.Comment
	Patches() map[uint64]*artifact.Patch

	Function(addr uint64) (*artifact.Function, bool)
	StackVariable(funcAddr uint64, offset int64) (*artifact.StackVariable, bool)
	GlobalVariable(addr uint64) (*artifact.GlobalVariable, bool)
	Struct(name string) (*artifact.Struct, bool)
	Enum(name string) (*artifact.Enum, bool)
	Comment(addr uint64) (*artifact.Comment, bool)
	Patch(addr uint64) (*artifact.Patch, bool)

	SetFunction(f *artifact.Function) (bool, error)
	SetFunctionHeader(h *artifact.FunctionHeader) (bool, error)
	SetStackVariable(v *artifact.StackVariable) (bool, error)
	SetGlobalVariable(g *artifact.GlobalVariable) (bool, error)
	SetStruct(s *artifact.Struct) (bool, error)
	SetEnum(e *artifact.Enum) (bool, error)
	SetComment(c *artifact.Comment) (bool, error)
	SetPatch(p *artifact.Patch) (bool, error)

	// BinaryHash returns a stable content hash of the loaded binary, or
	// "" when none is loaded.
	BinaryHash() string
	// BinaryPath returns the path of the loaded binary, if any.
	BinaryPath() (string, bool)
	// FunctionSize returns the byte size of the function at addr, 0 when
	// unknown.
	FunctionSize(addr uint64) int
	// DecompilerAvailable reports whether Decompile can produce output.
	DecompilerAvailable() bool
	// Decompile returns pseudocode for the given function.
	Decompile(f *artifact.Function) (string, error)
	// ActiveContext returns the function the user is currently viewing.
	ActiveContext() (*artifact.Function, bool)
	// GotoAddress moves the decompiler view to addr.
	GotoAddress(addr uint64)
}

// UnimplementedBackend provides no-op defaults for the whole Backend
// contract. Getters report absence, setters report no change, enumerators
// return nothing. Adapters embed it and override what their decompiler
// supports.
type UnimplementedBackend struct{}

var _ Backend = UnimplementedBackend{}

func (UnimplementedBackend) Functions() map[uint64]*artifact.Function { return nil }
func (UnimplementedBackend) StackVariables() map[artifact.StackKey]*artifact.StackVariable {
	return nil
}
func (UnimplementedBackend) GlobalVariables() map[uint64]*artifact.GlobalVariable { return nil }
func (UnimplementedBackend) Structs() map[string]*artifact.Struct                 { return nil }
func (UnimplementedBackend) Enums() map[string]*artifact.Enum                     { return nil }
func (UnimplementedBackend) Comments() map[uint64]*artifact.Comment               { return nil }
func (UnimplementedBackend) Patches() map[uint64]*artifact.Patch                  { return nil }

func (UnimplementedBackend) Function(addr uint64) (*artifact.Function, bool) { return nil, false }
func (UnimplementedBackend) StackVariable(funcAddr uint64, offset int64) (*artifact.StackVariable, bool) {
	return nil, false
}
func (UnimplementedBackend) GlobalVariable(addr uint64) (*artifact.GlobalVariable, bool) {
	return nil, false
}
func (UnimplementedBackend) Struct(name string) (*artifact.Struct, bool)   { return nil, false }
func (UnimplementedBackend) Enum(name string) (*artifact.Enum, bool)       { return nil, false }
func (UnimplementedBackend) Comment(addr uint64) (*artifact.Comment, bool) { return nil, false }
func (UnimplementedBackend) Patch(addr uint64) (*artifact.Patch, bool)     { return nil, false }

func (UnimplementedBackend) SetFunction(f *artifact.Function) (bool, error) { return false, nil }
func (UnimplementedBackend) SetFunctionHeader(h *artifact.FunctionHeader) (bool, error) {
	return false, nil
}
func (UnimplementedBackend) SetStackVariable(v *artifact.StackVariable) (bool, error) {
	return false, nil
}
func (UnimplementedBackend) SetGlobalVariable(g *artifact.GlobalVariable) (bool, error) {
	return false, nil
}
func (UnimplementedBackend) SetStruct(s *artifact.Struct) (bool, error)   { return false, nil }
func (UnimplementedBackend) SetEnum(e *artifact.Enum) (bool, error)       { return false, nil }
func (UnimplementedBackend) SetComment(c *artifact.Comment) (bool, error) { return false, nil }
func (UnimplementedBackend) SetPatch(p *artifact.Patch) (bool, error)     { return false, nil }

func (UnimplementedBackend) BinaryHash() string           { return "" }
func (UnimplementedBackend) BinaryPath() (string, bool)   { return "", false }
func (UnimplementedBackend) FunctionSize(addr uint64) int { return 0 }
func (UnimplementedBackend) DecompilerAvailable() bool    { return true }
func (UnimplementedBackend) Decompile(f *artifact.Function) (string, error) {
	return "", ErrUnsupported
}
func (UnimplementedBackend) ActiveContext() (*artifact.Function, bool) { return nil, false }
func (UnimplementedBackend) GotoAddress(addr uint64)                   {}

// SetFunctionByParts writes a function through its parts: the header via
// SetFunctionHeader, then each stack variable in offset order via
// SetStackVariable. Adapters whose decompiler has no whole-function write
// use this as their SetFunction. Stops at the first error, reporting any
// changes already applied.
func SetFunctionByParts(b Backend, f *artifact.Function) (bool, error) {
	changed := false
	if f.Header != nil {
		c, err := b.SetFunctionHeader(f.Header)
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	offsets := make([]int64, 0, len(f.StackVars))
	for offset := range f.StackVars {
		offsets = append(offsets, offset)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	for _, offset := range offsets {
		c, err := b.SetStackVariable(f.StackVars[offset])
		changed = changed || c
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}
