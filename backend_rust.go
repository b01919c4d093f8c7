package idlc

import "fmt"

// RustBackend emits Rust: a struct per interface object handle, plain
// functions rather than methods for the invoke skeleton (no trait
// dispatch is specified), and raw-identifier escaping instead of
// suffixing, since Rust alone can always fall back to `r#ident` for a
// reserved-word collision (idlc_codegen/src/keywords.rs's stated reason
// for excluding Rust keywords from the shared reserved list).
type RustBackend struct{}

func (RustBackend) Name() string              { return "rust" }
func (RustBackend) MarkingStyle() MarkingStyle { return StyleRust }

func (RustBackend) GenerateImplementation(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("    ")
	w.writel("#![allow(dead_code)]")
	w.writel("")

	for _, st := range mir.Structs {
		renderStructRust(w, st)
	}

	w.writel("#[repr(C)]")
	w.writeil(fmt.Sprintf("pub struct %s {", pascalCase(iface.Ident.Name)))
	w.indent()
	w.writeil("pub invoke: u64,")
	w.writeil("pub context: u64,")
	w.unindent()
	w.writel("}")
	w.writel("")

	for _, link := range reverseChain(iface) {
		for _, c := range link.Consts {
			w.writeil(fmt.Sprintf("pub const %s: %s = %s;", upperSnake(c.Ident.Name), rustTypeName(c.Primitive), c.LiteralText))
		}
		for _, e := range link.Errors {
			w.writeil(fmt.Sprintf("pub const ERR_%s: i32 = -%d;", upperSnake(e.Ident.Name), e.Value))
		}
	}

	w.writeil(fmt.Sprintf("impl %s {", pascalCase(iface.Ident.Name)))
	w.indent()
	for _, link := range reverseChain(iface) {
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("pub const OP_%s: u32 = %s;", upperSnake(fn.Ident.Name), opcodeHex(fn.Opcode)))
			doc := FormatDocumentation(fn.Doc, StyleRust)
			if doc != "" {
				w.write(doc)
			}
			w.writeil(fmt.Sprintf("pub fn %s(&self%s) -> i32 {", rustIdent(fn.Ident.Name), rustParamList(fn)))
			w.indent()
			for _, step := range buildPlan(&fn) {
				renderInvokeStepRust(w, step)
			}
			w.writeil(fmt.Sprintf("unsafe { invoke(self, Self::OP_%s) }", upperSnake(fn.Ident.Name)))
			w.unindent()
			w.writeil("}")
		}
	}
	w.unindent()
	w.writel("}")
	return w.String()
}

func (RustBackend) GenerateInvoke(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("    ")
	w.writeil(fmt.Sprintf("pub fn invoke(op: u32, args: &mut [*mut u8]) -> i32 {"))
	w.indent()
	w.writeil("match op {")
	w.indent()
	for _, link := range reverseChain(iface) {
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("%s => {", opcodeHex(fn.Opcode)))
			w.indent()
			for _, step := range buildPlan(&fn) {
				renderInvokeStepRust(w, step)
			}
			w.writeil(fmt.Sprintf("%s(args)", rustIdent(fn.Ident.Name)))
			w.unindent()
			w.writeil("}")
		}
	}
	w.writeil("_ => -1,")
	w.unindent()
	w.writeil("}")
	w.unindent()
	w.writel("}")
	return w.String()
}

func renderStructRust(w *outputWriter, st *MIRStruct) {
	w.writel("#[repr(C)]")
	w.writeil(fmt.Sprintf("pub struct %s {", pascalCase(st.Ident.Name)))
	w.indent()
	for _, f := range st.Fields {
		w.writeil(rustFieldDecl(f))
	}
	w.unindent()
	w.writel("}")
	w.writel("")
}

func rustFieldDecl(f MIRStructField) string {
	typeName := rustFieldTypeName(f.Type)
	if f.Count > 1 {
		return fmt.Sprintf("pub %s: [%s; %d],", rustIdent(f.Ident.Name), typeName, f.Count)
	}
	return fmt.Sprintf("pub %s: %s,", rustIdent(f.Ident.Name), typeName)
}

func rustFieldTypeName(t MIRType) string {
	switch t.Kind {
	case MIRPrimitive:
		return rustTypeName(t.Prim)
	case MIRStructRef:
		return pascalCase(t.Struct.Ident.Name)
	case MIRObject:
		return "Object"
	default:
		return "u8"
	}
}

// rustIdent escapes a reserved-word collision with Rust's raw-identifier
// syntax rather than EscapeIdent's suffix strategy, since Rust keywords
// were deliberately excluded from the shared reserved set.
func rustIdent(ident string) string {
	switch ident {
	case "type", "fn", "impl", "match", "move", "ref", "trait", "use", "where", "yield":
		return "r#" + ident
	default:
		return ident
	}
}

func rustParamList(fn MIRFunction) string {
	out := ""
	for _, p := range fn.Params {
		typeName := rustFieldTypeName(p.Shape.Type)
		if p.Shape.IsArray {
			typeName = "&[" + typeName + "]"
		} else if p.Direction == DirOut {
			typeName = "&mut " + typeName
		}
		out += fmt.Sprintf(", %s: %s", rustIdent(p.Ident.Name), typeName)
	}
	return out
}

func renderInvokeStepRust(w *outputWriter, step argStep) {
	switch step.kind {
	case stepInputBundled:
		w.writeil("// pack bundled input primitives")
	case stepOutputBundled:
		w.writeil("// unpack bundled output primitives")
	default:
		w.writeil(fmt.Sprintf("// marshal %s", step.param.Ident.Name))
	}
}
