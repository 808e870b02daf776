package artifact

// GlobalVariable represents a named variable living outside any function
// frame, identified by its address.
type GlobalVariable struct {
	Addr uint64 `json:"addr" toml:"addr"`
	Name string `json:"name" toml:"name"`
	Type string `json:"type,omitempty" toml:"type,omitempty"`
	Size uint64 `json:"size,omitempty" toml:"size,omitempty"`

	Full bool `json:"-" toml:"-"`
}

// GlobalVariableStub returns an existence-only GlobalVariable.
func GlobalVariableStub(addr uint64, name string) *GlobalVariable {
	return &GlobalVariable{Addr: addr, Name: name}
}

func (g *GlobalVariable) Kind() Kind { return KindGlobalVariable }

func (g *GlobalVariable) Equal(other Artifact) bool {
	o, ok := other.(*GlobalVariable)
	if !ok || o == nil {
		return false
	}
	return g.Addr == o.Addr && g.Name == o.Name && g.Type == o.Type && g.Size == o.Size
}

func (g *GlobalVariable) Copy() Artifact {
	cp := *g
	return &cp
}
