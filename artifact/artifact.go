// Package artifact defines the canonical model for decompiler artifacts:
// functions, stack variables, global variables, structs, enums, comments
// and patches. Backends translate their native state into these types and
// back; everything above the backend boundary speaks this model only.
package artifact

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps all artifact validation failures so callers can match
// them with errors.Is regardless of the concrete artifact kind.
var ErrInvalid = errors.New("invalid artifact")

// Kind classifies a canonical artifact.
type Kind int

const (
	KindFunction       Kind = iota // Function with optional header and stack frame
	KindFunctionHeader             // Name, return type and arguments of a function
	KindStackVariable              // Frame-relative variable inside a function
	KindGlobalVariable             // Addressed variable outside any function
	KindStruct                     // Named composite type with offset members
	KindEnum                       // Named integer constant set
	KindComment                    // Free text anchored to an address
	KindPatch                      // Raw byte modification at an address
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindFunctionHeader:
		return "function_header"
	case KindStackVariable:
		return "stack_variable"
	case KindGlobalVariable:
		return "global_variable"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindComment:
		return "comment"
	case KindPatch:
		return "patch"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseKind maps a kind name as produced by Kind.String back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k := KindFunction; k <= KindPatch; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown artifact kind %q: %w", name, ErrInvalid)
}

// Artifact is implemented by every canonical artifact kind. Equal compares
// values for change detection and ignores the Full completeness flag; Copy
// returns a deep copy that shares no mutable state with the receiver.
type Artifact interface {
	Kind() Kind
	Equal(other Artifact) bool
	Copy() Artifact
}

// StackKey identifies a stack variable across the whole binary: the owning
// function's canonical address plus the signed frame offset.
type StackKey struct {
	FuncAddr uint64
	Offset   int64
}

// GlobalKey identifies an entry in the merged global existence view. Named
// artifacts (structs, enums) populate Name; addressed artifacts (global
// variables) populate Addr. The two key spaces cannot collide, while two
// named artifacts sharing a name deliberately do.
type GlobalKey struct {
	Name string
	Addr uint64
}

// Validate checks kind-specific invariants of a. Kinds without invariants
// validate trivially. Failures wrap ErrInvalid.
func Validate(a Artifact) error {
	switch v := a.(type) {
	case *Function:
		return v.Validate()
	case *Struct:
		return v.Validate()
	case *Patch:
		return v.Validate()
	}
	return nil
}
