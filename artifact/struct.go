package artifact

import "fmt"

// Struct represents a user-defined composite type. Members are ordered by
// their byte offset within the struct; an unexported index by offset is
// maintained alongside the slice for lookup.
type Struct struct {
	Name    string          `json:"name" toml:"name"`
	Size    uint64          `json:"size,omitempty" toml:"size,omitempty"`
	Members []*StructMember `json:"members,omitempty" toml:"members,omitempty"`

	Full bool `json:"-" toml:"-"`

	memberMap map[uint64]*StructMember
}

// StructMember is a single field of a Struct, placed at a byte offset.
type StructMember struct {
	Name   string `json:"name" toml:"name"`
	Offset uint64 `json:"offset" toml:"offset"`
	Type   string `json:"type,omitempty" toml:"type,omitempty"`
	Size   uint64 `json:"size,omitempty" toml:"size,omitempty"`
}

// StructStub returns an existence-only Struct.
func StructStub(name string) *Struct {
	return &Struct{Name: name}
}

func (s *Struct) Kind() Kind { return KindStruct }

// AddMember appends member and indexes it by offset. A member already at
// the same offset is replaced in the index but not removed from the slice;
// callers are expected to add each offset once.
func (s *Struct) AddMember(member *StructMember) {
	if s.memberMap == nil {
		s.memberMap = make(map[uint64]*StructMember)
	}
	s.Members = append(s.Members, member)
	s.memberMap[member.Offset] = member
}

// MemberAt returns the member placed at offset, if any.
func (s *Struct) MemberAt(offset uint64) (*StructMember, bool) {
	if s.memberMap == nil {
		s.memberMap = make(map[uint64]*StructMember, len(s.Members))
		for _, m := range s.Members {
			s.memberMap[m.Offset] = m
		}
	}
	m, ok := s.memberMap[offset]
	return m, ok
}

// Validate enforces that member offsets are unique and, when the struct
// declares a size, that each member lies within it.
func (s *Struct) Validate() error {
	seen := make(map[uint64]bool, len(s.Members))
	for _, m := range s.Members {
		if m == nil {
			return fmt.Errorf("struct %q has nil member: %w", s.Name, ErrInvalid)
		}
		if seen[m.Offset] {
			return fmt.Errorf("struct %q has duplicate member offset %d: %w", s.Name, m.Offset, ErrInvalid)
		}
		seen[m.Offset] = true
		if s.Size > 0 && m.Offset >= s.Size {
			return fmt.Errorf("struct %q member %q at offset %d outside size %d: %w", s.Name, m.Name, m.Offset, s.Size, ErrInvalid)
		}
	}
	return nil
}

func (s *Struct) Equal(other Artifact) bool {
	o, ok := other.(*Struct)
	if !ok || o == nil {
		return false
	}
	if s.Name != o.Name || s.Size != o.Size || len(s.Members) != len(o.Members) {
		return false
	}
	for i, m := range s.Members {
		if *m != *o.Members[i] {
			return false
		}
	}
	return true
}

func (s *Struct) Copy() Artifact {
	cp := &Struct{
		Name: s.Name,
		Size: s.Size,
		Full: s.Full,
	}
	if s.Members != nil {
		cp.Members = make([]*StructMember, len(s.Members))
		for i, m := range s.Members {
			mCopy := *m
			cp.Members[i] = &mCopy
		}
	}
	return cp
}
