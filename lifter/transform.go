package lifter

import "github.com/twizmwazin/yodalib/artifact"

// Lift returns a copy of a translated from the backend's native view into
// the canonical view. The input is never modified. A nil artifact lifts
// to nil.
func Lift(l Lifter, a artifact.Artifact) artifact.Artifact {
	if a == nil {
		return nil
	}
	lifted := a.Copy()
	switch v := lifted.(type) {
	case *artifact.Function:
		nativeAddr := v.Addr
		v.Addr = l.LiftAddr(v.Addr)
		if v.Header != nil {
			liftHeader(l, v.Header)
		}
		if len(v.StackVars) > 0 {
			vars := make(map[int64]*artifact.StackVariable, len(v.StackVars))
			for _, sv := range v.StackVars {
				liftStackVar(l, sv, nativeAddr)
				vars[sv.Offset] = sv
			}
			v.StackVars = vars
		}
	case *artifact.FunctionHeader:
		liftHeader(l, v)
	case *artifact.StackVariable:
		liftStackVar(l, v, v.FuncAddr)
	case *artifact.GlobalVariable:
		v.Addr = l.LiftAddr(v.Addr)
		v.Type = l.LiftType(v.Type)
	case *artifact.Struct:
		for _, m := range v.Members {
			m.Type = l.LiftType(m.Type)
		}
	case *artifact.Comment:
		v.Addr = l.LiftAddr(v.Addr)
	case *artifact.Patch:
		v.Addr = l.LiftAddr(v.Addr)
	}
	return lifted
}

// Lower returns a copy of a translated from the canonical view back into
// the backend's native view. Lower is the inverse of Lift.
func Lower(l Lifter, a artifact.Artifact) artifact.Artifact {
	if a == nil {
		return nil
	}
	lowered := a.Copy()
	switch v := lowered.(type) {
	case *artifact.Function:
		v.Addr = l.LowerAddr(v.Addr)
		nativeAddr := v.Addr
		if v.Header != nil {
			lowerHeader(l, v.Header)
		}
		if len(v.StackVars) > 0 {
			vars := make(map[int64]*artifact.StackVariable, len(v.StackVars))
			for _, sv := range v.StackVars {
				lowerStackVar(l, sv, nativeAddr)
				vars[sv.Offset] = sv
			}
			v.StackVars = vars
		}
	case *artifact.FunctionHeader:
		lowerHeader(l, v)
	case *artifact.StackVariable:
		lowerStackVar(l, v, l.LowerAddr(v.FuncAddr))
	case *artifact.GlobalVariable:
		v.Addr = l.LowerAddr(v.Addr)
		v.Type = l.LowerType(v.Type)
	case *artifact.Struct:
		for _, m := range v.Members {
			m.Type = l.LowerType(m.Type)
		}
	case *artifact.Comment:
		v.Addr = l.LowerAddr(v.Addr)
	case *artifact.Patch:
		v.Addr = l.LowerAddr(v.Addr)
	}
	return lowered
}

func liftHeader(l Lifter, h *artifact.FunctionHeader) {
	h.Addr = l.LiftAddr(h.Addr)
	h.ReturnType = l.LiftType(h.ReturnType)
	for _, arg := range h.Args {
		arg.Type = l.LiftType(arg.Type)
	}
}

func lowerHeader(l Lifter, h *artifact.FunctionHeader) {
	h.Addr = l.LowerAddr(h.Addr)
	h.ReturnType = l.LowerType(h.ReturnType)
	for _, arg := range h.Args {
		arg.Type = l.LowerType(arg.Type)
	}
}

func liftStackVar(l Lifter, sv *artifact.StackVariable, nativeFuncAddr uint64) {
	sv.Offset = l.LiftStackOffset(sv.Offset, nativeFuncAddr)
	sv.FuncAddr = l.LiftAddr(sv.FuncAddr)
	sv.Type = l.LiftType(sv.Type)
}

func lowerStackVar(l Lifter, sv *artifact.StackVariable, nativeFuncAddr uint64) {
	sv.Offset = l.LowerStackOffset(sv.Offset, nativeFuncAddr)
	sv.FuncAddr = l.LowerAddr(sv.FuncAddr)
	sv.Type = l.LowerType(sv.Type)
}
