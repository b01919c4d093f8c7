package idlc

import (
	"os"
	"path/filepath"
)

// SymbolKind distinguishes the three namespaces a top-level identifier
// can belong to.
type SymbolKind int

const (
	SymStruct SymbolKind = iota
	SymInterface
	SymConst
)

// Symbol records where a name was defined, for duplicate-definition and
// unresolved-reference diagnostics.
type Symbol struct {
	Kind SymbolKind
	Path string
	Span Span
}

// IDLStore is the single piece of mutable shared state in the pipeline:
// the AST cache keyed by canonical path, and the three symbol tables
// (struct/interface/const) built incrementally as files are loaded.
// Grounded on idlc_ast_passes/src/idl_store.rs's IDLStore.
type IDLStore struct {
	cfg *CompilerConfig

	units map[string]*CompilationUnit

	structs    map[string]*Struct
	interfaces map[string]*Interface
	consts     map[string]*Const
	symbols    map[string]Symbol

	includeGraph *Graph[string]
	Warnings     []*Diagnostic
}

func NewIDLStore(cfg *CompilerConfig) *IDLStore {
	return &IDLStore{
		cfg:          cfg,
		units:        make(map[string]*CompilationUnit),
		structs:      make(map[string]*Struct),
		interfaces:   make(map[string]*Interface),
		consts:       make(map[string]*Const),
		symbols:      make(map[string]Symbol),
		includeGraph: NewGraph[string](),
	}
}

func canonicalize(path string) (string, *Diagnostic) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fatal(KindIO, "cannot resolve path `%s`: %v", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// GetOrInsert reads, lexes, parses, and lifts the file at path if it
// isn't already cached, then gathers its symbols. Fails fatally on any
// I/O or parse error, per spec §4.D.
func (s *IDLStore) GetOrInsert(path string) (*CompilationUnit, *Diagnostic) {
	canon, diag := canonicalize(path)
	if diag != nil {
		return nil, diag
	}
	if unit, ok := s.units[canon]; ok {
		return unit, nil
	}

	src, err := os.ReadFile(canon)
	if err != nil {
		return nil, fatal(KindIO, "cannot read `%s`: %v", canon, err)
	}

	unit, _, diag := ParseFile(canon, src, s.cfg)
	if diag != nil {
		return nil, diag
	}

	s.units[canon] = unit
	s.includeGraph.AddNode(canon)
	if diag := s.gatherSymbols(unit); diag != nil {
		return nil, diag
	}
	return unit, nil
}

// LoadRoot loads path as the root compilation unit and recursively
// resolves and loads every include it (transitively) references,
// checking for include cycles incrementally as each edge is added.
func (s *IDLStore) LoadRoot(path string) (*CompilationUnit, *Diagnostic) {
	root, diag := s.GetOrInsert(path)
	if diag != nil {
		return nil, diag
	}
	if diag := s.walkIncludes(root); diag != nil {
		return nil, diag
	}
	return root, nil
}

func (s *IDLStore) walkIncludes(unit *CompilationUnit) *Diagnostic {
	for _, node := range unit.Nodes {
		inc, ok := node.(IncludeNode)
		if !ok {
			continue
		}

		target, diag := s.resolveInclude(unit.Path, inc.Path)
		if diag != nil {
			return diag
		}

		s.includeGraph.AddEdge(unit.Path, target)
		if cycle := s.includeGraph.Cycle(); cycle != nil {
			return fatalAt(KindCycle, unit.Path, inc.Path.Span,
				"include cycle detected: %s", formatCycle(cycle.Nodes))
		}

		alreadyLoaded := false
		if _, ok := s.units[target]; ok {
			alreadyLoaded = true
		}
		included, diag := s.GetOrInsert(target)
		if diag != nil {
			return diag
		}
		if !alreadyLoaded {
			if diag := s.walkIncludes(included); diag != nil {
				return diag
			}
		}
	}
	return nil
}

func formatCycle(nodes []string) string {
	out := ""
	for i, n := range nodes {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}

// resolveInclude canonicalizes an include target using the search order
// from idlc_ast_passes/src/idl_store.rs::change_to_canonical: relative to
// the includer's directory first, then each configured include root in
// order, first match wins with a warning on ties.
func (s *IDLStore) resolveInclude(includerPath string, includeIdent Ident) (string, *Diagnostic) {
	relative := filepath.Join(filepath.Dir(includerPath), includeIdent.Name)
	if fileExists(relative) {
		return canonicalize(relative)
	}

	var matches []string
	for _, root := range s.cfg.IncludeRoots {
		candidate := filepath.Join(root, includeIdent.Name)
		if fileExists(candidate) {
			matches = append(matches, candidate)
		}
	}
	if len(matches) == 0 {
		return "", fatalAt(KindIO, includerPath, includeIdent.Span,
			"cannot resolve include `%s`: not found relative to includer or in any include root", includeIdent.Name)
	}
	if len(matches) > 1 {
		s.Warnings = append(s.Warnings, newWarning(includerPath,
			"include `%s` matched multiple roots (%v); using the first", includeIdent.Name, matches))
	}
	return canonicalize(matches[0])
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// gatherSymbols registers every struct/interface/const the unit declares
// into the global symbol tables. Interfaces additionally register a
// synthetic object-handle struct under their own name (spec §4.D's
// "special symbol rule").
func (s *IDLStore) gatherSymbols(unit *CompilationUnit) *Diagnostic {
	for _, node := range unit.Nodes {
		switch n := node.(type) {
		case ConstNode:
			if diag := s.defineConst(n.Const, unit.Path); diag != nil {
				return diag
			}
		case StructNode:
			if diag := s.defineStruct(&n.Struct); diag != nil {
				return diag
			}
		case InterfaceNodeTop:
			iface := n.Interface
			if diag := s.defineInterface(&iface); diag != nil {
				return diag
			}
			handle := NewObjectHandleStruct(iface.Ident, unit.Path)
			if diag := s.defineStruct(handle); diag != nil {
				return diag
			}
			for _, in := range iface.Nodes {
				if ic, ok := in.(IfaceConst); ok {
					if diag := s.defineConst(ic.Const, unit.Path); diag != nil {
						return diag
					}
				}
			}
		}
	}
	return nil
}

func (s *IDLStore) defineStruct(st *Struct) *Diagnostic {
	key := "struct:" + st.Ident.Name
	if existing, ok := s.symbols[key]; ok {
		return fatalAt(KindDuplicate, st.OriginPath, st.Ident.Span,
			"struct `%s` redefines symbol first declared at %s", st.Ident.Name, existing.Path)
	}
	s.symbols[key] = Symbol{Kind: SymStruct, Path: st.OriginPath, Span: st.Ident.Span}
	s.structs[st.Ident.Name] = st
	return nil
}

func (s *IDLStore) defineInterface(iface *Interface) *Diagnostic {
	key := "iface:" + iface.Ident.Name
	if existing, ok := s.symbols[key]; ok {
		return fatalAt(KindDuplicate, iface.OriginPath, iface.Ident.Span,
			"interface `%s` redefines symbol first declared at %s", iface.Ident.Name, existing.Path)
	}
	s.symbols[key] = Symbol{Kind: SymInterface, Path: iface.OriginPath, Span: iface.Ident.Span}
	s.interfaces[iface.Ident.Name] = iface
	return nil
}

func (s *IDLStore) defineConst(c Const, path string) *Diagnostic {
	key := "const:" + c.Ident.Name
	if existing, ok := s.symbols[key]; ok {
		return fatalAt(KindDuplicate, path, c.Ident.Span,
			"const `%s` redefines symbol first declared at %s", c.Ident.Name, existing.Path)
	}
	s.symbols[key] = Symbol{Kind: SymConst, Path: path, Span: c.Ident.Span}
	cc := c
	s.consts[c.Ident.Name] = &cc
	return nil
}

func (s *IDLStore) StructLookup(name string) (*Struct, bool) {
	st, ok := s.structs[name]
	return st, ok
}

func (s *IDLStore) IfaceLookup(name string) (*Interface, bool) {
	iface, ok := s.interfaces[name]
	return iface, ok
}

func (s *IDLStore) ConstLookup(name string) (*Const, bool) {
	c, ok := s.consts[name]
	return c, ok
}

// Units returns every compilation unit loaded so far, keyed by canonical
// path, for passes that need to walk every file rather than just the
// root (e.g. MIR lowering collects top-level consts from all of them).
func (s *IDLStore) Units() map[string]*CompilationUnit { return s.units }

func (s *IDLStore) Interfaces() map[string]*Interface { return s.interfaces }

func (s *IDLStore) Structs() map[string]*Struct { return s.structs }
