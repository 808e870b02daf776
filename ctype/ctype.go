// Package ctype parses C type descriptors as decompilers spell them:
// "int", "unsigned __int64", "struct in_addr *", "char[16]". A descriptor
// is probed by wrapping it in a synthetic declaration and parsing that
// with the tree-sitter C grammar, so the full declarator syntax (pointers,
// arrays, function pointers) comes for free.
package ctype

import (
	"context"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

const probeName = "__probe"

// knownPrimitives holds typedef-style spellings that parse as plain type
// identifiers but denote builtin machine types in common decompilers.
var knownPrimitives = map[string]bool{
	"bool": true, "_Bool": true, "wchar_t": true,
	"size_t": true, "ssize_t": true, "ptrdiff_t": true,
	"intptr_t": true, "uintptr_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	// IDA spellings
	"__int8": true, "__int16": true, "__int32": true, "__int64": true,
	"_BYTE": true, "_WORD": true, "_DWORD": true, "_QWORD": true,
	"_OWORD": true, "_TBYTE": true, "_BOOL1": true, "_BOOL4": true,
	// Windows-style spellings decompilers emit
	"BYTE": true, "WORD": true, "DWORD": true, "QWORD": true,
	"CHAR": true, "UCHAR": true, "SHORT": true, "USHORT": true,
	"INT": true, "UINT": true, "LONG": true, "ULONG": true,
	"LONGLONG": true, "ULONGLONG": true, "BOOL": true, "VOID": true,
	// Ghidra spellings
	"byte": true, "sbyte": true, "word": true, "dword": true, "qword": true,
	"uint": true, "ulong": true, "ushort": true, "uchar": true,
	"undefined": true, "undefined1": true, "undefined2": true,
	"undefined4": true, "undefined8": true,
}

// Type is the parsed form of a C type descriptor.
type Type struct {
	Raw       string // descriptor as given
	Base      string // base type name, tag keyword stripped
	Pointers  int    // pointer depth
	ArrayLen  uint64 // element count when IsArray and the length was literal
	IsArray   bool
	IsStruct  bool
	IsEnum    bool
	IsUnion   bool
	IsFunc    bool // function pointer
	Primitive bool // builtin or known decompiler primitive
}

// UserDefined reports whether the base type must come from somewhere other
// than the language itself.
func (t *Type) UserDefined() bool { return !t.Primitive }

// Parser parses C type descriptors. The zero value is not usable; create
// with NewParser.
type Parser struct {
	lang *sitter.Language
}

// NewParser creates a Parser backed by the tree-sitter C grammar.
func NewParser() *Parser {
	return &Parser{lang: c.GetLanguage()}
}

// Parse parses a single type descriptor. Descriptors that are empty, are
// not valid C, or declare something other than one plain variable yield
// (nil, false); Parse never panics on garbage input.
func (p *Parser) Parse(descriptor string) (*Type, bool) {
	spec := strings.TrimSpace(descriptor)
	if spec == "" {
		return nil, false
	}

	parser := sitter.NewParser()
	parser.SetLanguage(p.lang)

	source := []byte(probeDeclaration(spec))
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, false
	}

	root := tree.RootNode()
	if root.HasError() || root.NamedChildCount() != 1 {
		return nil, false
	}
	decl := root.NamedChild(0)
	if decl.Type() != "declaration" {
		return nil, false
	}

	typ := &Type{Raw: spec}
	if !readTypeSpecifier(decl.ChildByFieldName("type"), source, typ) {
		return nil, false
	}
	readDeclarator(decl.ChildByFieldName("declarator"), source, typ)

	return typ, true
}

// probeDeclaration turns a type descriptor into a parseable declaration by
// splicing in a probe identifier. Array suffixes and function-pointer stars
// need the identifier inside the declarator rather than appended.
func probeDeclaration(spec string) string {
	if strings.Contains(spec, "(*)") {
		return strings.Replace(spec, "(*)", "(*"+probeName+")", 1) + ";"
	}
	if idx := strings.Index(spec, "["); idx >= 0 {
		return spec[:idx] + " " + probeName + spec[idx:] + ";"
	}
	return spec + " " + probeName + ";"
}

func readTypeSpecifier(node *sitter.Node, source []byte, typ *Type) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "primitive_type", "sized_type_specifier":
		typ.Base = node.Content(source)
		typ.Primitive = true
	case "struct_specifier", "enum_specifier", "union_specifier":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return false
		}
		typ.Base = nameNode.Content(source)
		switch node.Type() {
		case "struct_specifier":
			typ.IsStruct = true
		case "enum_specifier":
			typ.IsEnum = true
		case "union_specifier":
			typ.IsUnion = true
		}
	case "type_identifier":
		typ.Base = node.Content(source)
		typ.Primitive = knownPrimitives[typ.Base]
	default:
		return false
	}
	return typ.Base != ""
}

func readDeclarator(node *sitter.Node, source []byte, typ *Type) {
	for node != nil {
		switch node.Type() {
		case "pointer_declarator":
			typ.Pointers++
			node = node.ChildByFieldName("declarator")
		case "array_declarator":
			typ.IsArray = true
			if size := node.ChildByFieldName("size"); size != nil {
				if n, err := strconv.ParseUint(size.Content(source), 10, 64); err == nil {
					typ.ArrayLen = n
				}
			}
			node = node.ChildByFieldName("declarator")
		case "function_declarator":
			typ.IsFunc = true
			node = node.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			if node.NamedChildCount() == 0 {
				return
			}
			node = node.NamedChild(0)
		default:
			return
		}
	}
}
