package artifact

import (
	"bytes"
	"fmt"
)

// Patch is a raw byte modification applied at an address. Bytes replace
// the original image content starting at Addr.
type Patch struct {
	Addr  uint64 `json:"addr" toml:"addr"`
	Bytes []byte `json:"bytes" toml:"-"`

	Full bool `json:"-" toml:"-"`
}

func (p *Patch) Kind() Kind { return KindPatch }

// End returns the first address past the patched range.
func (p *Patch) End() uint64 {
	return p.Addr + uint64(len(p.Bytes))
}

// Validate enforces that the patch carries at least one byte.
func (p *Patch) Validate() error {
	if len(p.Bytes) == 0 {
		return fmt.Errorf("patch at %#x has no bytes: %w", p.Addr, ErrInvalid)
	}
	return nil
}

func (p *Patch) Equal(other Artifact) bool {
	o, ok := other.(*Patch)
	if !ok || o == nil {
		return false
	}
	return p.Addr == o.Addr && bytes.Equal(p.Bytes, o.Bytes)
}

func (p *Patch) Copy() Artifact {
	cp := &Patch{Addr: p.Addr, Full: p.Full}
	if p.Bytes != nil {
		cp.Bytes = append([]byte(nil), p.Bytes...)
	}
	return cp
}
