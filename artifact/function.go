package artifact

import "fmt"

// Function represents a function in the binary, identified by its start
// address and byte size. The header and the stack frame are optional: an
// existence stub produced by a backend enumerator carries only Addr, Name
// and Size with Full left false.
type Function struct {
	Addr      uint64                   `json:"addr" toml:"addr"`
	Size      uint64                   `json:"size" toml:"size"`
	Name      string                   `json:"name,omitempty" toml:"name,omitempty"`
	Header    *FunctionHeader          `json:"header,omitempty" toml:"header,omitempty"`
	StackVars map[int64]*StackVariable `json:"stack_vars,omitempty" toml:"-"`

	// Full reports whether the artifact carries live data or is an
	// existence-only stub. Excluded from equality and serialization.
	Full bool `json:"-" toml:"-"`
}

// FunctionStub returns an existence-only Function carrying the minimum
// knowledge that the function exists in the backend.
func FunctionStub(addr, size uint64, name string) *Function {
	return &Function{Addr: addr, Size: size, Name: name}
}

func (f *Function) Kind() Kind { return KindFunction }

// Contains reports whether addr falls inside the function's range.
func (f *Function) Contains(addr uint64) bool {
	return addr >= f.Addr && addr < f.Addr+f.Size
}

// Validate enforces the containment invariant: every owned artifact's
// effective address lies within [Addr, Addr+Size), and stack variables are
// keyed consistently with their own offsets.
func (f *Function) Validate() error {
	if f.Header != nil {
		if f.Size == 0 && f.Header.Addr != f.Addr {
			return fmt.Errorf("header address %#x outside zero-sized function %#x: %w", f.Header.Addr, f.Addr, ErrInvalid)
		}
		if f.Size > 0 && !f.Contains(f.Header.Addr) {
			return fmt.Errorf("header address %#x outside function [%#x, %#x): %w", f.Header.Addr, f.Addr, f.Addr+f.Size, ErrInvalid)
		}
	}
	for offset, sv := range f.StackVars {
		if sv == nil {
			return fmt.Errorf("nil stack variable at offset %d: %w", offset, ErrInvalid)
		}
		if sv.Offset != offset {
			return fmt.Errorf("stack variable keyed at %d declares offset %d: %w", offset, sv.Offset, ErrInvalid)
		}
		if sv.FuncAddr != f.Addr {
			return fmt.Errorf("stack variable at offset %d belongs to %#x, not %#x: %w", offset, sv.FuncAddr, f.Addr, ErrInvalid)
		}
	}
	return nil
}

func (f *Function) Equal(other Artifact) bool {
	o, ok := other.(*Function)
	if !ok || o == nil {
		return false
	}
	if f.Addr != o.Addr || f.Size != o.Size || f.Name != o.Name {
		return false
	}
	if (f.Header == nil) != (o.Header == nil) {
		return false
	}
	if f.Header != nil && !f.Header.Equal(o.Header) {
		return false
	}
	if len(f.StackVars) != len(o.StackVars) {
		return false
	}
	for offset, sv := range f.StackVars {
		osv, ok := o.StackVars[offset]
		if !ok || !sv.Equal(osv) {
			return false
		}
	}
	return true
}

func (f *Function) Copy() Artifact {
	cp := &Function{
		Addr: f.Addr,
		Size: f.Size,
		Name: f.Name,
		Full: f.Full,
	}
	if f.Header != nil {
		cp.Header = f.Header.Copy().(*FunctionHeader)
	}
	if f.StackVars != nil {
		cp.StackVars = make(map[int64]*StackVariable, len(f.StackVars))
		for offset, sv := range f.StackVars {
			cp.StackVars[offset] = sv.Copy().(*StackVariable)
		}
	}
	return cp
}

// AddStackVar indexes sv into the function's frame, keyed by its offset.
func (f *Function) AddStackVar(sv *StackVariable) {
	if f.StackVars == nil {
		f.StackVars = make(map[int64]*StackVariable)
	}
	f.StackVars[sv.Offset] = sv
}

// FunctionHeader holds the name, return type and ordered argument list of
// a function. A header belongs to exactly one function, recorded in Addr,
// and never outlives it.
type FunctionHeader struct {
	Name       string              `json:"name" toml:"name"`
	Addr       uint64              `json:"addr" toml:"addr"`
	ReturnType string              `json:"return_type,omitempty" toml:"return_type,omitempty"`
	Args       []*FunctionArgument `json:"args,omitempty" toml:"args,omitempty"`
}

// FunctionArgument is a single parameter in a function header. Position in
// the header's Args slice is the argument's position in the prototype.
type FunctionArgument struct {
	Name string `json:"name" toml:"name"`
	Type string `json:"type,omitempty" toml:"type,omitempty"`
	Size uint64 `json:"size,omitempty" toml:"size,omitempty"`
}

func (h *FunctionHeader) Kind() Kind { return KindFunctionHeader }

func (h *FunctionHeader) Equal(other Artifact) bool {
	o, ok := other.(*FunctionHeader)
	if !ok || o == nil {
		return false
	}
	if h.Name != o.Name || h.Addr != o.Addr || h.ReturnType != o.ReturnType {
		return false
	}
	if len(h.Args) != len(o.Args) {
		return false
	}
	for i, arg := range h.Args {
		if *arg != *o.Args[i] {
			return false
		}
	}
	return true
}

func (h *FunctionHeader) Copy() Artifact {
	cp := &FunctionHeader{
		Name:       h.Name,
		Addr:       h.Addr,
		ReturnType: h.ReturnType,
	}
	if h.Args != nil {
		cp.Args = make([]*FunctionArgument, len(h.Args))
		for i, arg := range h.Args {
			argCopy := *arg
			cp.Args[i] = &argCopy
		}
	}
	return cp
}

// StackVariable represents a variable on a function's stack frame. Offset
// is signed and frame-relative; FuncAddr names the owning function, so the
// pair (FuncAddr, Offset) keys the variable across the whole binary.
type StackVariable struct {
	FuncAddr uint64 `json:"func_addr" toml:"func_addr"`
	Offset   int64  `json:"offset" toml:"offset"`
	Name     string `json:"name" toml:"name"`
	Type     string `json:"type,omitempty" toml:"type,omitempty"`
	Size     uint64 `json:"size,omitempty" toml:"size,omitempty"`

	Full bool `json:"-" toml:"-"`
}

func (v *StackVariable) Kind() Kind { return KindStackVariable }

// Key returns the binary-wide identity of the variable.
func (v *StackVariable) Key() StackKey {
	return StackKey{FuncAddr: v.FuncAddr, Offset: v.Offset}
}

func (v *StackVariable) Equal(other Artifact) bool {
	o, ok := other.(*StackVariable)
	if !ok || o == nil {
		return false
	}
	return v.FuncAddr == o.FuncAddr && v.Offset == o.Offset &&
		v.Name == o.Name && v.Type == o.Type && v.Size == o.Size
}

func (v *StackVariable) Copy() Artifact {
	cp := *v
	return &cp
}
