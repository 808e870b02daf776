package artifact

import "sort"

// OverwriteMerge combines two artifacts of the same kind: every set field
// of b overwrites the corresponding field of a. Unset means the zero value
// for scalar fields and nil for nested ones. Addresses identify artifacts
// and are never merged. The result is a new artifact; neither input is
// modified. A nil or kind-mismatched b yields a copy of a.
func OverwriteMerge(a, b Artifact) Artifact {
	if a == nil {
		if b == nil {
			return nil
		}
		return b.Copy()
	}
	if b == nil || a.Kind() != b.Kind() {
		return a.Copy()
	}
	merged := a.Copy()
	switch m := merged.(type) {
	case *Function:
		overwriteFunction(m, b.(*Function))
	case *FunctionHeader:
		overwriteHeader(m, b.(*FunctionHeader))
	case *StackVariable:
		o := b.(*StackVariable)
		overwriteString(&m.Name, o.Name)
		overwriteString(&m.Type, o.Type)
		overwriteUint(&m.Size, o.Size)
	case *GlobalVariable:
		o := b.(*GlobalVariable)
		overwriteString(&m.Name, o.Name)
		overwriteString(&m.Type, o.Type)
		overwriteUint(&m.Size, o.Size)
	case *Struct:
		overwriteStruct(m, b.(*Struct))
	case *Enum:
		o := b.(*Enum)
		for name, value := range o.Members {
			if m.Members == nil {
				m.Members = make(map[string]int64)
			}
			m.Members[name] = value
		}
	case *Comment:
		o := b.(*Comment)
		if o.Text != "" {
			m.Text = o.Text
			m.Decompiled = o.Decompiled
		}
	case *Patch:
		o := b.(*Patch)
		if len(o.Bytes) > 0 {
			m.Bytes = append([]byte(nil), o.Bytes...)
		}
	}
	return merged
}

// NonConflictMerge combines two artifacts of the same kind: fields of a
// that are unset are filled from b, and set fields of a are kept. Nested
// collections merge recursively, with b contributing only entries a does
// not already have. The result is a new artifact; neither input is
// modified.
func NonConflictMerge(a, b Artifact) Artifact {
	if a == nil {
		if b == nil {
			return nil
		}
		return b.Copy()
	}
	if b == nil || a.Kind() != b.Kind() {
		return a.Copy()
	}
	merged := a.Copy()
	switch m := merged.(type) {
	case *Function:
		fillFunction(m, b.(*Function))
	case *FunctionHeader:
		fillHeader(m, b.(*FunctionHeader))
	case *StackVariable:
		o := b.(*StackVariable)
		fillString(&m.Name, o.Name)
		fillString(&m.Type, o.Type)
		fillUint(&m.Size, o.Size)
	case *GlobalVariable:
		o := b.(*GlobalVariable)
		fillString(&m.Name, o.Name)
		fillString(&m.Type, o.Type)
		fillUint(&m.Size, o.Size)
	case *Struct:
		fillStruct(m, b.(*Struct))
	case *Enum:
		o := b.(*Enum)
		for name, value := range o.Members {
			if _, ok := m.Members[name]; !ok {
				if m.Members == nil {
					m.Members = make(map[string]int64)
				}
				m.Members[name] = value
			}
		}
	case *Comment:
		o := b.(*Comment)
		if m.Text == "" && o.Text != "" {
			m.Text = o.Text
			m.Decompiled = o.Decompiled
		}
	case *Patch:
		o := b.(*Patch)
		if len(m.Bytes) == 0 && len(o.Bytes) > 0 {
			m.Bytes = append([]byte(nil), o.Bytes...)
		}
	}
	return merged
}

func overwriteFunction(m, o *Function) {
	overwriteString(&m.Name, o.Name)
	overwriteUint(&m.Size, o.Size)
	if o.Header != nil {
		if m.Header == nil {
			m.Header = o.Header.Copy().(*FunctionHeader)
		} else {
			overwriteHeader(m.Header, o.Header)
		}
	}
	for offset, sv := range o.StackVars {
		existing, ok := m.StackVars[offset]
		if !ok {
			m.AddStackVar(sv.Copy().(*StackVariable))
			continue
		}
		m.StackVars[offset] = OverwriteMerge(existing, sv).(*StackVariable)
	}
}

func fillFunction(m, o *Function) {
	fillString(&m.Name, o.Name)
	fillUint(&m.Size, o.Size)
	if o.Header != nil {
		if m.Header == nil {
			m.Header = o.Header.Copy().(*FunctionHeader)
		} else {
			fillHeader(m.Header, o.Header)
		}
	}
	for offset, sv := range o.StackVars {
		existing, ok := m.StackVars[offset]
		if !ok {
			m.AddStackVar(sv.Copy().(*StackVariable))
			continue
		}
		m.StackVars[offset] = NonConflictMerge(existing, sv).(*StackVariable)
	}
}

func overwriteHeader(m, o *FunctionHeader) {
	overwriteString(&m.Name, o.Name)
	overwriteString(&m.ReturnType, o.ReturnType)
	for i, arg := range o.Args {
		if i < len(m.Args) {
			overwriteString(&m.Args[i].Name, arg.Name)
			overwriteString(&m.Args[i].Type, arg.Type)
			overwriteUint(&m.Args[i].Size, arg.Size)
			continue
		}
		argCopy := *arg
		m.Args = append(m.Args, &argCopy)
	}
}

func fillHeader(m, o *FunctionHeader) {
	fillString(&m.Name, o.Name)
	fillString(&m.ReturnType, o.ReturnType)
	for i, arg := range o.Args {
		if i < len(m.Args) {
			fillString(&m.Args[i].Name, arg.Name)
			fillString(&m.Args[i].Type, arg.Type)
			fillUint(&m.Args[i].Size, arg.Size)
			continue
		}
		argCopy := *arg
		m.Args = append(m.Args, &argCopy)
	}
}

func overwriteStruct(m, o *Struct) {
	overwriteUint(&m.Size, o.Size)
	for _, member := range o.Members {
		if existing, ok := m.MemberAt(member.Offset); ok {
			overwriteString(&existing.Name, member.Name)
			overwriteString(&existing.Type, member.Type)
			overwriteUint(&existing.Size, member.Size)
			continue
		}
		mCopy := *member
		m.AddMember(&mCopy)
	}
	sortMembers(m)
}

func fillStruct(m, o *Struct) {
	fillUint(&m.Size, o.Size)
	for _, member := range o.Members {
		if _, ok := m.MemberAt(member.Offset); ok {
			continue
		}
		mCopy := *member
		m.AddMember(&mCopy)
	}
	sortMembers(m)
}

func sortMembers(s *Struct) {
	sort.Slice(s.Members, func(i, j int) bool {
		return s.Members[i].Offset < s.Members[j].Offset
	})
}

func overwriteString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func overwriteUint(dst *uint64, src uint64) {
	if src != 0 {
		*dst = src
	}
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func fillUint(dst *uint64, src uint64) {
	if *dst == 0 {
		*dst = src
	}
}
