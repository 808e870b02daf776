// Package host selects and constructs the decompiler backend for the
// environment the library is running inside. The hosting process states
// what it is through an explicit Env instead of being sniffed out of the
// call stack: adapters register themselves by name, probe the Env for
// their markers, and the first match in priority order wins.
package host

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/twizmwazin/yodalib/decompiler"
)

// Backend names probed in discovery order.
const (
	BackendIDA    = "ida"
	BackendBinja  = "binja"
	BackendAngr   = "angr"
	BackendGhidra = "ghidra"
)

// DefaultBackend is constructed when no registered backend recognizes the
// environment. Headless deployments overwhelmingly run under a Ghidra
// bridge, which is why it is the documented fallback.
const DefaultBackend = BackendGhidra

var (
	// ErrUnknownBackend reports a forced backend name nobody registered.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrNoBackend reports that discovery found nothing to construct.
	ErrNoBackend = errors.New("no backend available")
)

var priority = []string{BackendIDA, BackendBinja, BackendAngr, BackendGhidra}

// Priority returns the probe order used by Discover.
func Priority() []string {
	return append([]string(nil), priority...)
}

// Env is the hosting environment's self-description. Whatever objects the
// host would like its backend to receive (a Binary Ninja BinaryView, an
// angr management workspace) ride in Globals under well-known names;
// probes inspect those instead of walking caller stacks.
type Env struct {
	// Decompiler optionally names the backend to use, bypassing probing
	// the same way a forced Discover call does.
	Decompiler string
	// Version is the host decompiler's version, with or without the
	// leading "v".
	Version string
	// BinaryPath is the path of the binary loaded in the host, if any.
	BinaryPath string
	// Globals carries host objects for the backend constructor and the
	// probes.
	Globals map[string]any
}

// Global returns a host object by name.
func (e Env) Global(name string) (any, bool) {
	v, ok := e.Globals[name]
	return v, ok
}

// Registration describes one backend adapter to the discovery registry.
type Registration struct {
	// Name is the backend's discovery name, e.g. "ida".
	Name string
	// MinVersion is the lowest host version the adapter supports; empty
	// means any. Compared as semver against Env.Version when both are
	// set.
	MinVersion string
	// Probe reports whether the Env belongs to this backend. A nil
	// probe never matches, leaving the backend reachable only by name.
	Probe func(Env) bool
	// New constructs the backend's Interface.
	New func(Env, *decompiler.Config) (*decompiler.Interface, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register makes a backend available to Discover. Adapters call it from
// init. Registering twice under one name, with an empty name or without
// a constructor panics.
func Register(r Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if r.Name == "" {
		panic("host: Register backend with empty name")
	}
	if r.New == nil {
		panic("host: Register backend " + r.Name + " with nil constructor")
	}
	if _, dup := registry[r.Name]; dup {
		panic("host: Register called twice for backend " + r.Name)
	}
	registry[r.Name] = r
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[name]
	return r, ok
}

// Discover selects exactly one backend for env and constructs its
// Interface. A non-empty force (or Env.Decompiler) names the backend
// outright and skips probing and version gates; an unregistered forced
// name fails with ErrUnknownBackend. Otherwise registered backends are
// probed in Priority order, version-gated against Env.Version, and the
// first match wins; with no match the DefaultBackend is constructed, or
// ErrNoBackend returned when it was never registered.
func Discover(env Env, force string, cfg *decompiler.Config) (*decompiler.Interface, error) {
	log := zap.NewNop()
	if cfg != nil && cfg.Logger != nil {
		log = cfg.Logger
	}

	if force == "" {
		force = env.Decompiler
	}
	if force != "" {
		reg, ok := lookup(force)
		if !ok {
			return nil, fmt.Errorf("backend %q: %w", force, ErrUnknownBackend)
		}
		return construct(reg, env, cfg)
	}

	for _, name := range priority {
		reg, ok := lookup(name)
		if !ok || reg.Probe == nil || !reg.Probe(env) {
			continue
		}
		if !versionOK(reg.MinVersion, env.Version) {
			log.Debug("backend below minimum version",
				zap.String("backend", name),
				zap.String("version", env.Version),
				zap.String("min_version", reg.MinVersion))
			continue
		}
		log.Debug("backend detected", zap.String("backend", name))
		return construct(reg, env, cfg)
	}

	reg, ok := lookup(DefaultBackend)
	if !ok {
		return nil, fmt.Errorf("default backend %q not registered: %w", DefaultBackend, ErrNoBackend)
	}
	log.Debug("no backend detected, using default", zap.String("backend", DefaultBackend))
	return construct(reg, env, cfg)
}

func construct(reg Registration, env Env, cfg *decompiler.Config) (*decompiler.Interface, error) {
	iface, err := reg.New(env, cfg)
	if err != nil {
		return nil, fmt.Errorf("constructing backend %q: %w", reg.Name, err)
	}
	return iface, nil
}

func versionOK(minVersion, version string) bool {
	if minVersion == "" || version == "" {
		return true
	}
	return semver.Compare(canonicalVersion(version), canonicalVersion(minVersion)) >= 0
}

func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
