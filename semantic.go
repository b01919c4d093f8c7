package idlc

import "fmt"

// CheckDuplicateParameters is the first semantic pass: every parameter
// ident within a single function must be unique. Grounded on
// idlc_ast_passes/src/functions.rs::Functions.
func CheckDuplicateParameters(store *IDLStore) *Diagnostic {
	for _, iface := range store.Interfaces() {
		for _, node := range iface.Nodes {
			fn, ok := node.(IfaceFunction)
			if !ok {
				continue
			}
			seen := make(map[string]Ident, len(fn.Function.Params))
			for _, p := range fn.Function.Params {
				if prior, dup := seen[p.Ident.Name]; dup {
					return fatalAt(KindDuplicate, iface.OriginPath, p.Ident.Span,
						"%s::%s has duplicate parameter %s (first seen at %s)",
						iface.Ident.Name, fn.Function.Ident.Name, p.Ident.Name, prior.Span)
				}
				seen[p.Ident.Name] = p.Ident
			}
		}
	}
	return nil
}

// structFieldTypeName returns the ident a struct field's type resolves
// against in the struct-field graph: only Custom fields contribute an
// edge; primitive and interface-typed fields don't.
func structFieldTypeName(t Type) (string, bool) {
	switch v := t.(type) {
	case CustomType:
		return v.Ident.Name, true
	case InterfaceType:
		return "", false
	default:
		return "", false
	}
}

// CheckAcyclicity is the second semantic pass: builds the struct-field
// graph and the interface-base graph and requires both to be acyclic.
// Returns the struct topological order (leaves first) for the layout
// pass. Grounded on idlc_ast_passes/src/cycles.rs.
func CheckAcyclicity(store *IDLStore) ([]string, *Diagnostic) {
	structGraph := NewGraph[string]()
	for name, st := range store.Structs() {
		structGraph.AddNode(name)
		for _, f := range st.Fields {
			if dep, ok := structFieldTypeName(f.Type); ok {
				structGraph.AddEdge(name, dep)
			}
		}
	}
	order, cycle := structGraph.Toposort()
	if cycle != nil {
		return nil, fatal(KindCycle, "struct field cycle detected: %s", formatCycle(cycle.Nodes))
	}

	ifaceGraph := NewGraph[string]()
	for name, iface := range store.Interfaces() {
		ifaceGraph.AddNode(name)
		if iface.Base != nil {
			ifaceGraph.AddEdge(name, iface.Base.Name)
		}
	}
	if _, cycle := ifaceGraph.Toposort(); cycle != nil {
		return nil, fatal(KindCycle, "interface inheritance cycle detected: %s", formatCycle(cycle.Nodes))
	}

	return order, nil
}

type StructLayout struct {
	size      int
	alignment int
}

const maxStructSize = 1024

// VerifyStructLayouts is the third semantic pass: walks structs in the
// topological order CheckAcyclicity produced and computes each one's
// size/alignment, failing on misalignment or the 1024-byte size bound.
// Grounded on idlc_ast_passes/src/struct_verifier.rs.
func VerifyStructLayouts(store *IDLStore, order []string) (map[string]StructLayout, *Diagnostic) {
	layouts := make(map[string]StructLayout, len(order))

	for _, name := range order {
		st, ok := store.StructLookup(name)
		if !ok {
			continue
		}

		offset := 0
		alignment := 1
		for _, field := range st.Fields {
			fieldSize, fieldAlign, diag := fieldSizeAndAlignment(store, field.Type, layouts, st.OriginPath, field.Ident)
			if diag != nil {
				return nil, diag
			}

			if offset%fieldAlign != 0 {
				return nil, fatalAt(KindLayout, st.OriginPath, field.Ident.Span,
					"member %s in %s not aligned to %d at offset %d", field.Ident.Name, name, fieldAlign, offset)
			}
			offset += fieldSize * int(field.Count)
			if offset > maxStructSize {
				return nil, fatalAt(KindLayout, st.OriginPath, field.Ident.Span,
					"struct %s exceeds the maximum size of %d bytes", name, maxStructSize)
			}
			if fieldAlign > alignment {
				alignment = fieldAlign
			}
		}

		if alignment > 0 && offset%alignment != 0 {
			return nil, fatalAt(KindLayout, st.OriginPath, st.Ident.Span,
				"struct %s not aligned to its natural alignment %d", name, alignment)
		}

		layouts[name] = StructLayout{size: offset, alignment: alignment}
	}

	return layouts, nil
}

func fieldSizeAndAlignment(store *IDLStore, t Type, layouts map[string]StructLayout, path string, fieldIdent Ident) (int, int, *Diagnostic) {
	switch v := t.(type) {
	case PrimitiveType:
		return v.Prim.Size(), v.Prim.Alignment(), nil
	case InterfaceType:
		return objectHandleSize, objectHandleSize, nil
	case CustomType:
		layout, ok := layouts[v.Ident.Name]
		if !ok {
			if _, exists := store.StructLookup(v.Ident.Name); !exists {
				return 0, 0, fatalAt(KindUnresolved, path, fieldIdent.Span,
					"field %s references undefined struct %s", fieldIdent.Name, v.Ident.Name)
			}
			return 0, 0, fatalAt(KindLayout, path, fieldIdent.Span,
				"struct %s used before its layout was computed (cycle escaped detection)", v.Ident.Name)
		}
		return layout.size, layout.alignment, nil
	default:
		return 0, 0, fatal(KindLayout, "unknown type kind %v", fmt.Sprintf("%T", t))
	}
}
