package artifact

// Comment is free text anchored to an address. Decompiled marks a comment
// that belongs to the pseudocode view rather than the disassembly view.
type Comment struct {
	Addr       uint64 `json:"addr" toml:"addr"`
	Text       string `json:"text" toml:"text"`
	Decompiled bool   `json:"decompiled,omitempty" toml:"decompiled,omitempty"`

	Full bool `json:"-" toml:"-"`
}

func (c *Comment) Kind() Kind { return KindComment }

func (c *Comment) Equal(other Artifact) bool {
	o, ok := other.(*Comment)
	if !ok || o == nil {
		return false
	}
	return c.Addr == o.Addr && c.Text == o.Text && c.Decompiled == o.Decompiled
}

func (c *Comment) Copy() Artifact {
	cp := *c
	return &cp
}
