package idlc

import "fmt"

// CppBackend emits C++: a namespace per interface, a class wrapping the
// object handle, and constexpr opcode/error constants instead of C's
// #define. Structurally a close cousin of CBackend; kept as its own
// emitter (rather than a CBackend flag) since the declaration syntax
// diverges throughout, matching how the spec treats the two as distinct
// backends with a shared visitor core.
type CppBackend struct{}

func (CppBackend) Name() string              { return "cpp" }
func (CppBackend) MarkingStyle() MarkingStyle { return StyleC }

func (CppBackend) GenerateImplementation(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("  ")
	w.writel("#pragma once")
	w.writel("#include <cstdint>")
	w.writel("")
	w.writel(fmt.Sprintf("namespace mink::%s {", snake(iface.Ident.Name)))
	w.indent()

	for _, st := range mir.Structs {
		renderStructCpp(w, st)
	}

	w.writeil(fmt.Sprintf("class %s {", pascalCase(iface.Ident.Name)))
	w.writeil("public:")
	w.indent()
	w.writeil("uint64_t invoke_;")
	w.writeil("uint64_t context_;")
	w.writel("")

	for _, link := range reverseChain(iface) {
		for _, c := range link.Consts {
			w.writeil(fmt.Sprintf("static constexpr auto %s = %s;", upperSnake(c.Ident.Name), c.LiteralText))
		}
		for _, e := range link.Errors {
			w.writeil(fmt.Sprintf("static constexpr int32_t kErr%s = -%d;", pascalCase(e.Ident.Name), e.Value))
		}
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("static constexpr uint32_t kOp%s = %s;", pascalCase(fn.Ident.Name), opcodeHex(fn.Opcode)))
			doc := FormatDocumentation(fn.Doc, StyleC)
			if doc != "" {
				w.write(doc)
			}
			w.writeil(fmt.Sprintf("int %s(%s);", EscapeIdent(fn.Ident.Name), cppParamList(fn)))
		}
	}
	w.unindent()
	w.writeil("};")
	w.unindent()
	w.writel("} // namespace")
	return w.String()
}

func (CppBackend) GenerateInvoke(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("  ")
	w.writel(fmt.Sprintf("int %s_invoke(uint32_t op, void **args, uint32_t counts) {", snake(iface.Ident.Name)))
	w.indent()
	w.writeil("switch (op) {")
	w.indent()
	for _, link := range reverseChain(iface) {
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("case %s:", opcodeHex(fn.Opcode)))
			w.indent()
			for _, step := range buildPlan(&fn) {
				renderInvokeStepCpp(w, step)
			}
			w.writeil(fmt.Sprintf("return %s(%s);", EscapeIdent(fn.Ident.Name), cArgList(fn)))
			w.unindent()
		}
	}
	w.writeil("default: return -1;")
	w.unindent()
	w.writeil("}")
	w.unindent()
	w.writel("}")
	return w.String()
}

func renderStructCpp(w *outputWriter, st *MIRStruct) {
	w.writeil(fmt.Sprintf("struct %s {", pascalCase(st.Ident.Name)))
	w.indent()
	for _, f := range st.Fields {
		w.writeil(cppFieldDecl(f))
	}
	w.unindent()
	w.writeil("};")
}

func cppFieldDecl(f MIRStructField) string {
	typeName := cppFieldTypeName(f.Type)
	if f.Count > 1 {
		return fmt.Sprintf("%s %s[%d];", typeName, EscapeIdent(f.Ident.Name), f.Count)
	}
	return fmt.Sprintf("%s %s;", typeName, EscapeIdent(f.Ident.Name))
}

func cppFieldTypeName(t MIRType) string {
	switch t.Kind {
	case MIRPrimitive:
		return cTypeName(t.Prim)
	case MIRStructRef:
		return pascalCase(t.Struct.Ident.Name)
	case MIRObject:
		return "Object"
	default:
		return "uint8_t"
	}
}

func cppParamList(fn MIRFunction) string {
	out := ""
	for i, p := range fn.Params {
		if i > 0 {
			out += ", "
		}
		typeName := cppFieldTypeName(p.Shape.Type)
		ref := ""
		if p.Direction == DirOut || p.Shape.IsArray {
			ref = "&"
		}
		out += fmt.Sprintf("%s%s %s", typeName, ref, EscapeIdent(p.Ident.Name))
	}
	return out
}

func renderInvokeStepCpp(w *outputWriter, step argStep) {
	switch step.kind {
	case stepInputBundled:
		w.writeil("// unpack bundled input primitives")
	case stepOutputBundled:
		w.writeil("// reserve bundled output primitives")
	default:
		w.writeil(fmt.Sprintf("// marshal %s", step.param.Ident.Name))
	}
}
