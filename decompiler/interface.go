package decompiler

import (
	"sync"

	"go.uber.org/zap"

	"github.com/twizmwazin/yodalib/artifact"
	"github.com/twizmwazin/yodalib/ctype"
	"github.com/twizmwazin/yodalib/lifter"
)

// Config controls Interface construction. Zero or nil fields fall back to
// defaults: an Identity lifter, a no-op logger and a fresh C type parser.
type Config struct {
	// Lifter translates between the backend's native view and the
	// canonical one.
	Lifter lifter.Lifter
	// Logger receives the facade's diagnostics.
	Logger *zap.Logger
	// TypeParser resolves C type descriptors for TypeIsUserDefined.
	TypeParser *ctype.Parser
	// ErrorOnDuplicates makes table writes to an occupied key fail with
	// ErrDuplicateArtifact instead of overwriting.
	ErrorOnDuplicates bool
	// Headless disables the UI operations: ActiveContext reports absence
	// and GotoAddress does nothing.
	Headless bool
}

// StructIndex answers whether a struct name is known to some external
// store of user-defined types.
type StructIndex interface {
	HasStruct(name string) bool
}

// StructSet is a StructIndex over a plain name set.
type StructSet map[string]bool

func (s StructSet) HasStruct(name string) bool { return s[name] }

// Interface is the canonical-view facade over one Backend. All addresses,
// type names and stack offsets crossing it are lifted; the per-kind tables
// expose read and write access, and the setter entry points route whole
// artifacts to the right backend operation.
type Interface struct {
	backend  Backend
	lifter   lifter.Lifter
	log      *zap.Logger
	types    *ctype.Parser
	headless bool

	guard   setGuard
	setters map[artifact.Kind]func(artifact.Artifact) (bool, error)

	cbMu      sync.Mutex
	callbacks map[artifact.Kind][]callback

	Functions *Table[uint64, *artifact.Function]
	StackVars *Table[artifact.StackKey, *artifact.StackVariable]
	Globals   *Table[uint64, *artifact.GlobalVariable]
	Structs   *Table[string, *artifact.Struct]
	Enums     *Table[string, *artifact.Enum]
	Comments  *Table[uint64, *artifact.Comment]
	Patches   *Table[uint64, *artifact.Patch]
}

// New creates an Interface over backend. A nil config selects defaults
// for every field.
func New(backend Backend, config *Config) *Interface {
	if config == nil {
		config = &Config{}
	}
	lf := config.Lifter
	if lf == nil {
		lf = lifter.Identity{}
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	types := config.TypeParser
	if types == nil {
		types = ctype.NewParser()
	}

	i := &Interface{
		backend:   backend,
		lifter:    lf,
		log:       log,
		types:     types,
		headless:  config.Headless,
		callbacks: make(map[artifact.Kind][]callback),
	}
	i.buildTables(config.ErrorOnDuplicates)
	i.buildSetters()
	return i
}

func (i *Interface) buildTables(errorOnDuplicate bool) {
	lf := i.lifter
	b := i.backend

	lowerStackKey := func(k artifact.StackKey) artifact.StackKey {
		nativeFunc := lf.LowerAddr(k.FuncAddr)
		return artifact.StackKey{
			FuncAddr: nativeFunc,
			Offset:   lf.LowerStackOffset(k.Offset, nativeFunc),
		}
	}
	liftStackKey := func(k artifact.StackKey) artifact.StackKey {
		return artifact.StackKey{
			FuncAddr: lf.LiftAddr(k.FuncAddr),
			Offset:   lf.LiftStackOffset(k.Offset, k.FuncAddr),
		}
	}
	sameName := func(name string) string { return name }

	i.Functions = &Table[uint64, *artifact.Function]{
		get:              b.Function,
		set:              b.SetFunction,
		list:             b.Functions,
		lowerKey:         lf.LowerAddr,
		liftKey:          lf.LiftAddr,
		keyOf:            func(f *artifact.Function) uint64 { return f.Addr },
		lift:             liftAs[*artifact.Function](lf),
		lower:            lowerAs[*artifact.Function](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
	i.StackVars = &Table[artifact.StackKey, *artifact.StackVariable]{
		get: func(k artifact.StackKey) (*artifact.StackVariable, bool) {
			return b.StackVariable(k.FuncAddr, k.Offset)
		},
		set:              b.SetStackVariable,
		list:             b.StackVariables,
		lowerKey:         lowerStackKey,
		liftKey:          liftStackKey,
		keyOf:            func(v *artifact.StackVariable) artifact.StackKey { return v.Key() },
		lift:             liftAs[*artifact.StackVariable](lf),
		lower:            lowerAs[*artifact.StackVariable](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
	i.Globals = &Table[uint64, *artifact.GlobalVariable]{
		get:              b.GlobalVariable,
		set:              b.SetGlobalVariable,
		list:             b.GlobalVariables,
		lowerKey:         lf.LowerAddr,
		liftKey:          lf.LiftAddr,
		keyOf:            func(g *artifact.GlobalVariable) uint64 { return g.Addr },
		lift:             liftAs[*artifact.GlobalVariable](lf),
		lower:            lowerAs[*artifact.GlobalVariable](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
	i.Structs = &Table[string, *artifact.Struct]{
		get:              b.Struct,
		set:              b.SetStruct,
		list:             b.Structs,
		lowerKey:         sameName,
		liftKey:          sameName,
		keyOf:            func(s *artifact.Struct) string { return s.Name },
		lift:             liftAs[*artifact.Struct](lf),
		lower:            lowerAs[*artifact.Struct](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
	i.Enums = &Table[string, *artifact.Enum]{
		get:              b.Enum,
		set:              b.SetEnum,
		list:             b.Enums,
		lowerKey:         sameName,
		liftKey:          sameName,
		keyOf:            func(e *artifact.Enum) string { return e.Name },
		lift:             liftAs[*artifact.Enum](lf),
		lower:            lowerAs[*artifact.Enum](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
	i.Comments = &Table[uint64, *artifact.Comment]{
		get:              b.Comment,
		set:              b.SetComment,
		list:             b.Comments,
		lowerKey:         lf.LowerAddr,
		liftKey:          lf.LiftAddr,
		keyOf:            func(c *artifact.Comment) uint64 { return c.Addr },
		lift:             liftAs[*artifact.Comment](lf),
		lower:            lowerAs[*artifact.Comment](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
	i.Patches = &Table[uint64, *artifact.Patch]{
		get:              b.Patch,
		set:              b.SetPatch,
		list:             b.Patches,
		lowerKey:         lf.LowerAddr,
		liftKey:          lf.LiftAddr,
		keyOf:            func(p *artifact.Patch) uint64 { return p.Addr },
		lift:             liftAs[*artifact.Patch](lf),
		lower:            lowerAs[*artifact.Patch](lf),
		errorOnDuplicate: errorOnDuplicate,
	}
}

func (i *Interface) buildSetters() {
	b := i.backend
	i.setters = map[artifact.Kind]func(artifact.Artifact) (bool, error){
		artifact.KindFunction: func(a artifact.Artifact) (bool, error) {
			return b.SetFunction(a.(*artifact.Function))
		},
		artifact.KindFunctionHeader: func(a artifact.Artifact) (bool, error) {
			return b.SetFunctionHeader(a.(*artifact.FunctionHeader))
		},
		artifact.KindStackVariable: func(a artifact.Artifact) (bool, error) {
			return b.SetStackVariable(a.(*artifact.StackVariable))
		},
		artifact.KindGlobalVariable: func(a artifact.Artifact) (bool, error) {
			return b.SetGlobalVariable(a.(*artifact.GlobalVariable))
		},
		artifact.KindStruct: func(a artifact.Artifact) (bool, error) {
			return b.SetStruct(a.(*artifact.Struct))
		},
		artifact.KindEnum: func(a artifact.Artifact) (bool, error) {
			return b.SetEnum(a.(*artifact.Enum))
		},
		artifact.KindComment: func(a artifact.Artifact) (bool, error) {
			return b.SetComment(a.(*artifact.Comment))
		},
		artifact.KindPatch: func(a artifact.Artifact) (bool, error) {
			return b.SetPatch(a.(*artifact.Patch))
		},
	}
}

func liftAs[A artifact.Artifact](l lifter.Lifter) func(A) A {
	return func(a A) A {
		return lifter.Lift(l, a).(A)
	}
}

func lowerAs[A artifact.Artifact](l lifter.Lifter) func(A) A {
	return func(a A) A {
		return lifter.Lower(l, a).(A)
	}
}

// setNative validates and routes a native artifact to its backend setter.
// Every failure degrades to "no change": unknown kinds are logged at
// error level, invalid artifacts and backend refusals at debug.
func (i *Interface) setNative(a artifact.Artifact) bool {
	if a == nil {
		return false
	}
	set, ok := i.setters[a.Kind()]
	if !ok {
		i.log.Error("unsupported artifact kind", zap.Stringer("kind", a.Kind()))
		return false
	}
	if err := artifact.Validate(a); err != nil {
		i.log.Debug("rejected invalid artifact",
			zap.Stringer("kind", a.Kind()), zap.Error(err))
		return false
	}
	changed, err := set(a)
	if err != nil {
		i.log.Debug("artifact set failed",
			zap.Stringer("kind", a.Kind()), zap.Error(err))
		return false
	}
	return changed
}

// SetArtifact lowers a canonical artifact and writes it to the backend,
// reporting whether decompiler state changed.
func (i *Interface) SetArtifact(a artifact.Artifact) bool {
	return i.setNative(lifter.Lower(i.lifter, a))
}

// SetNativeArtifact writes an already-lowered artifact to the backend.
func (i *Interface) SetNativeArtifact(a artifact.Artifact) bool {
	return i.setNative(a)
}

// ArtifactSetEvent is the entry point for set requests arriving from
// change propagation. It lowers the artifact and runs the write under the
// re-entrancy guard: nested events fired synchronously by decompiler
// callbacks complete on the same chain instead of deadlocking, and
// SettingArtifact reports true for their whole extent.
func (i *Interface) ArtifactSetEvent(a artifact.Artifact) bool {
	lowered := lifter.Lower(i.lifter, a)
	release := i.guard.enter()
	defer release()
	return i.setNative(lowered)
}

// SettingArtifact reports whether an artifact set chain is currently in
// flight. Adapter hooks use it to suppress the feedback callbacks their
// own writes would otherwise trigger.
func (i *Interface) SettingArtifact() bool {
	return i.guard.active()
}

// Decompile returns pseudocode for the function containing addr. The
// address is tried as given and then lowered, so both canonical and
// native addresses resolve. Absence of a containing function, an
// unavailable decompiler or a backend failure all report (_, false).
func (i *Interface) Decompile(addr uint64) (string, bool) {
	if !i.backend.DecompilerAvailable() {
		return "", false
	}
	var target *artifact.Function
	for _, searchAddr := range [2]uint64{addr, i.lifter.LowerAddr(addr)} {
		for _, fn := range i.backend.Functions() {
			if fn.Contains(searchAddr) {
				target = fn
				break
			}
		}
		if target != nil {
			break
		}
	}
	if target == nil {
		return "", false
	}
	text, err := i.backend.Decompile(target)
	if err != nil {
		i.log.Warn("decompile failed",
			zap.Uint64("addr", addr), zap.Error(err))
		return "", false
	}
	return text, true
}

// GlobalArtifactByAddress returns the global variable at a lifted address.
func (i *Interface) GlobalArtifactByAddress(addr uint64) (artifact.Artifact, bool) {
	g, ok := i.Globals.Get(addr)
	if !ok {
		return nil, false
	}
	return g, true
}

// GlobalArtifactByName returns the struct or enum with the given name,
// structs taking precedence.
func (i *Interface) GlobalArtifactByName(name string) (artifact.Artifact, bool) {
	if s, ok := i.Structs.Get(name); ok {
		return s, true
	}
	if e, ok := i.Enums.Get(name); ok {
		return e, true
	}
	return nil, false
}

// GlobalArtifacts returns the merged existence view of every struct,
// global variable and enum, in that merge order; on key collision the
// later kind wins.
func (i *Interface) GlobalArtifacts() map[artifact.GlobalKey]artifact.Artifact {
	out := make(map[artifact.GlobalKey]artifact.Artifact)
	for name, s := range i.Structs.List() {
		out[artifact.GlobalKey{Name: name}] = s
	}
	for addr, g := range i.Globals.List() {
		out[artifact.GlobalKey{Addr: addr}] = g
	}
	for name, e := range i.Enums.List() {
		out[artifact.GlobalKey{Name: name}] = e
	}
	return out
}

// TypeIsUserDefined reports whether a type descriptor names a
// user-defined struct, returning the bare struct name. The name must
// parse, must not be a builtin, and must be registered in index; a nil
// index falls back to the backend's struct table.
func (i *Interface) TypeIsUserDefined(descriptor string, index StructIndex) (string, bool) {
	typ, ok := i.types.Parse(descriptor)
	if !ok || typ.Primitive {
		return "", false
	}
	if index == nil {
		if !i.Structs.Contains(typ.Base) {
			return "", false
		}
		return typ.Base, true
	}
	if !index.HasStruct(typ.Base) {
		return "", false
	}
	return typ.Base, true
}

// LiftArtifact translates a native artifact into the canonical view.
func (i *Interface) LiftArtifact(a artifact.Artifact) artifact.Artifact {
	return lifter.Lift(i.lifter, a)
}

// LowerArtifact translates a canonical artifact into the native view.
func (i *Interface) LowerArtifact(a artifact.Artifact) artifact.Artifact {
	return lifter.Lower(i.lifter, a)
}

// BinaryHash returns the backend's hash of the loaded binary.
func (i *Interface) BinaryHash() string { return i.backend.BinaryHash() }

// BinaryPath returns the path of the loaded binary, if any.
func (i *Interface) BinaryPath() (string, bool) { return i.backend.BinaryPath() }

// DecompilerAvailable reports whether Decompile can produce output.
func (i *Interface) DecompilerAvailable() bool { return i.backend.DecompilerAvailable() }

// FunctionSize returns the byte size of the function at a lifted address,
// 0 when unknown.
func (i *Interface) FunctionSize(addr uint64) int {
	return i.backend.FunctionSize(i.lifter.LowerAddr(addr))
}

// ActiveContext returns the lifted function the user is viewing. Headless
// interfaces always report absence.
func (i *Interface) ActiveContext() (*artifact.Function, bool) {
	if i.headless {
		return nil, false
	}
	fn, ok := i.backend.ActiveContext()
	if !ok || fn == nil {
		return nil, false
	}
	return lifter.Lift(i.lifter, fn).(*artifact.Function), true
}

// GotoAddress moves the decompiler view to a lifted address. No-op on
// headless interfaces.
func (i *Interface) GotoAddress(addr uint64) {
	if i.headless {
		return
	}
	i.backend.GotoAddress(i.lifter.LowerAddr(addr))
}
