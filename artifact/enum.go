package artifact

// Enum represents a user-defined named set of integer constants. Members
// may alias: several names mapping to one value is well-formed.
type Enum struct {
	Name    string           `json:"name" toml:"name"`
	Members map[string]int64 `json:"members,omitempty" toml:"members,omitempty"`

	Full bool `json:"-" toml:"-"`
}

// EnumStub returns an existence-only Enum.
func EnumStub(name string) *Enum {
	return &Enum{Name: name}
}

func (e *Enum) Kind() Kind { return KindEnum }

func (e *Enum) Equal(other Artifact) bool {
	o, ok := other.(*Enum)
	if !ok || o == nil {
		return false
	}
	if e.Name != o.Name || len(e.Members) != len(o.Members) {
		return false
	}
	for name, value := range e.Members {
		ov, ok := o.Members[name]
		if !ok || ov != value {
			return false
		}
	}
	return true
}

func (e *Enum) Copy() Artifact {
	cp := &Enum{Name: e.Name, Full: e.Full}
	if e.Members != nil {
		cp.Members = make(map[string]int64, len(e.Members))
		for name, value := range e.Members {
			cp.Members[name] = value
		}
	}
	return cp
}
