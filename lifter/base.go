package lifter

// Base is a Lifter that subtracts the backend's image base from addresses
// on lift and adds it back on lower, and renames types through a pair of
// inverse lookup tables. Unsigned wraparound keeps the address round trip
// exact even when the canonical address underflows past zero.
type Base struct {
	imageBase uint64
	toLifted  map[string]string
	toNative  map[string]string
}

// New returns a Base lifter for a backend loaded at imageBase. typeMap
// maps native type spellings to canonical ones and must be bijective for
// the type round trip to hold; names absent from the table pass through.
func New(imageBase uint64, typeMap map[string]string) *Base {
	b := &Base{imageBase: imageBase}
	if len(typeMap) > 0 {
		b.toLifted = make(map[string]string, len(typeMap))
		b.toNative = make(map[string]string, len(typeMap))
		for native, lifted := range typeMap {
			b.toLifted[native] = lifted
			b.toNative[lifted] = native
		}
	}
	return b
}

// ImageBase returns the native load address the lifter rebases against.
func (b *Base) ImageBase() uint64 { return b.imageBase }

func (b *Base) LiftAddr(addr uint64) uint64  { return addr - b.imageBase }
func (b *Base) LowerAddr(addr uint64) uint64 { return addr + b.imageBase }

func (b *Base) LiftType(name string) string {
	if lifted, ok := b.toLifted[name]; ok {
		return lifted
	}
	return name
}

func (b *Base) LowerType(name string) string {
	if native, ok := b.toNative[name]; ok {
		return native
	}
	return name
}

func (b *Base) LiftStackOffset(offset int64, funcAddr uint64) int64  { return offset }
func (b *Base) LowerStackOffset(offset int64, funcAddr uint64) int64 { return offset }
