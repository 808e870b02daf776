package decompiler

import (
	"github.com/twizmwazin/yodalib/artifact"
	"github.com/twizmwazin/yodalib/lifter"
)

// Change callbacks let tooling observe edits the user makes inside the
// decompiler. Adapter hooks call the Notify side with native values; the
// facade lifts them and fans out to subscribers. Notifications fired
// while an artifact set chain is in flight are dropped, which is what
// breaks the write-callback-write feedback loop.

// OnFunctionHeaderChanged subscribes to function header edits.
func (i *Interface) OnFunctionHeaderChanged(fn func(*artifact.FunctionHeader)) {
	i.subscribe(artifact.KindFunctionHeader, func(a artifact.Artifact) {
		fn(a.(*artifact.FunctionHeader))
	})
}

// OnStackVariableChanged subscribes to stack variable edits.
func (i *Interface) OnStackVariableChanged(fn func(*artifact.StackVariable)) {
	i.subscribe(artifact.KindStackVariable, func(a artifact.Artifact) {
		fn(a.(*artifact.StackVariable))
	})
}

// OnGlobalVariableChanged subscribes to global variable edits.
func (i *Interface) OnGlobalVariableChanged(fn func(*artifact.GlobalVariable)) {
	i.subscribe(artifact.KindGlobalVariable, func(a artifact.Artifact) {
		fn(a.(*artifact.GlobalVariable))
	})
}

// OnStructChanged subscribes to struct edits.
func (i *Interface) OnStructChanged(fn func(*artifact.Struct)) {
	i.subscribe(artifact.KindStruct, func(a artifact.Artifact) {
		fn(a.(*artifact.Struct))
	})
}

// OnEnumChanged subscribes to enum edits.
func (i *Interface) OnEnumChanged(fn func(*artifact.Enum)) {
	i.subscribe(artifact.KindEnum, func(a artifact.Artifact) {
		fn(a.(*artifact.Enum))
	})
}

// OnCommentChanged subscribes to comment edits.
func (i *Interface) OnCommentChanged(fn func(*artifact.Comment)) {
	i.subscribe(artifact.KindComment, func(a artifact.Artifact) {
		fn(a.(*artifact.Comment))
	})
}

// NotifyFunctionHeaderChanged reports a native function header edit.
func (i *Interface) NotifyFunctionHeaderChanged(h *artifact.FunctionHeader) {
	if h == nil {
		return
	}
	i.notify(h)
}

// NotifyStackVariableChanged reports a native stack variable edit.
func (i *Interface) NotifyStackVariableChanged(v *artifact.StackVariable) {
	if v == nil {
		return
	}
	i.notify(v)
}

// NotifyGlobalVariableChanged reports a native global variable edit.
func (i *Interface) NotifyGlobalVariableChanged(g *artifact.GlobalVariable) {
	if g == nil {
		return
	}
	i.notify(g)
}

// NotifyStructChanged reports a native struct edit.
func (i *Interface) NotifyStructChanged(s *artifact.Struct) {
	if s == nil {
		return
	}
	i.notify(s)
}

// NotifyEnumChanged reports a native enum edit.
func (i *Interface) NotifyEnumChanged(e *artifact.Enum) {
	if e == nil {
		return
	}
	i.notify(e)
}

// NotifyCommentChanged reports a native comment edit.
func (i *Interface) NotifyCommentChanged(c *artifact.Comment) {
	if c == nil {
		return
	}
	i.notify(c)
}

// callback is a type-erased subscriber; the On* wrappers restore the
// concrete artifact type.
type callback func(artifact.Artifact)

func (i *Interface) subscribe(kind artifact.Kind, fn callback) {
	i.cbMu.Lock()
	defer i.cbMu.Unlock()
	i.callbacks[kind] = append(i.callbacks[kind], fn)
}

func (i *Interface) notify(a artifact.Artifact) {
	if i.SettingArtifact() {
		return
	}
	i.cbMu.Lock()
	subs := append([]callback(nil), i.callbacks[a.Kind()]...)
	i.cbMu.Unlock()
	if len(subs) == 0 {
		return
	}
	lifted := lifter.Lift(i.lifter, a)
	for _, fn := range subs {
		fn(lifted)
	}
}
