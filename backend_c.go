package idlc

import "fmt"

// CBackend emits C: stdint-typed structs, a flat function-pointer-style
// object handle, and an invoke switch keyed on opcode. Grounded on
// teacher's genc.go structural shape (an outputWriter-driven emitter
// function per entry point) generalized to the Mink domain.
type CBackend struct {
	NoTypedObjects bool
}

func (CBackend) Name() string              { return "c" }
func (CBackend) MarkingStyle() MarkingStyle { return StyleC }

func (b CBackend) GenerateImplementation(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("    ")
	w.writel(fmt.Sprintf("#ifndef MINK_%s_H", upperSnake(iface.Ident.Name)))
	w.writel(fmt.Sprintf("#define MINK_%s_H", upperSnake(iface.Ident.Name)))
	w.writel("")
	w.writel("#include <stdint.h>")
	w.writel("")

	for _, st := range mir.Structs {
		renderStructC(w, st)
	}

	if b.NoTypedObjects {
		w.writel("typedef struct { uint64_t invoke; uint64_t context; } mink_object_t;")
	} else {
		w.writel(fmt.Sprintf("typedef struct { uint64_t invoke; uint64_t context; } %s_t;", snake(iface.Ident.Name)))
	}
	w.writel("")

	for _, link := range reverseChain(iface) {
		for _, c := range link.Consts {
			renderConstC(w, c)
		}
		for _, e := range link.Errors {
			w.writel(fmt.Sprintf("#define %s_ERR_%s (-%d)", upperSnake(iface.Ident.Name), upperSnake(e.Ident.Name), e.Value))
		}
		for _, fn := range link.Functions {
			w.writel(fmt.Sprintf("#define %s_OP_%s %s", upperSnake(iface.Ident.Name), upperSnake(fn.Ident.Name), opcodeHex(fn.Opcode)))
			renderFunctionSignatureC(w, iface, fn, false)
		}
	}

	w.writel("")
	w.writel(fmt.Sprintf("#endif // MINK_%s_H", upperSnake(iface.Ident.Name)))
	return w.String()
}

func (b CBackend) GenerateInvoke(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("    ")
	w.writel(fmt.Sprintf("int %s_invoke(uint32_t op, void **args, uint32_t counts) {", snake(iface.Ident.Name)))
	w.indent()
	w.writeil("switch (op) {")
	w.indent()
	for _, link := range reverseChain(iface) {
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("case %s: {", opcodeHex(fn.Opcode)))
			w.indent()
			for _, step := range buildPlan(&fn) {
				renderInvokeStepC(w, iface, fn, step)
			}
			w.writeil(fmt.Sprintf("return %s(%s);", EscapeIdent(fn.Ident.Name), cArgList(fn)))
			w.unindent()
			w.writeil("}")
		}
	}
	w.writeil("default:")
	w.indent()
	w.writeil("return -1;")
	w.unindent()
	w.unindent()
	w.writeil("}")
	w.unindent()
	w.writel("}")
	return w.String()
}

func renderStructC(w *outputWriter, st *MIRStruct) {
	w.writel(fmt.Sprintf("typedef struct {"))
	w.indent()
	for _, f := range st.Fields {
		w.writeil(cFieldDecl(f))
	}
	w.unindent()
	w.writel(fmt.Sprintf("} %s_t;", snake(st.Ident.Name)))
	w.writel("")
}

func cFieldDecl(f MIRStructField) string {
	typeName := cFieldTypeName(f.Type)
	if f.Count > 1 {
		return fmt.Sprintf("%s %s[%d];", typeName, EscapeIdent(f.Ident.Name), f.Count)
	}
	return fmt.Sprintf("%s %s;", typeName, EscapeIdent(f.Ident.Name))
}

func cFieldTypeName(t MIRType) string {
	switch t.Kind {
	case MIRPrimitive:
		return cTypeName(t.Prim)
	case MIRStructRef:
		return snake(t.Struct.Ident.Name) + "_t"
	case MIRObject:
		return "mink_object_t"
	default:
		return "uint8_t"
	}
}

func renderConstC(w *outputWriter, c MIRConst) {
	w.writel(fmt.Sprintf("#define %s %s", upperSnake(c.Ident.Name), c.LiteralText))
}

func renderFunctionSignatureC(w *outputWriter, iface *MIRInterface, fn MIRFunction, skel bool) {
	doc := FormatDocumentation(fn.Doc, StyleC)
	if doc != "" {
		w.write(doc)
	}
	w.writel(fmt.Sprintf("int %s_%s(%s_t *self%s);", snake(iface.Ident.Name), EscapeIdent(fn.Ident.Name), snake(iface.Ident.Name), cParamList(fn)))
}

func cParamList(fn MIRFunction) string {
	out := ""
	for _, p := range fn.Params {
		out += ", " + cParamDecl(p)
	}
	return out
}

func cParamDecl(p MIRParam) string {
	typeName := cFieldTypeName(p.Shape.Type)
	ptr := ""
	if p.Direction == DirOut || p.Shape.IsArray {
		ptr = "*"
	}
	return fmt.Sprintf("%s %s%s", typeName, ptr, EscapeIdent(p.Ident.Name))
}

func cArgList(fn MIRFunction) string {
	out := ""
	for i, p := range fn.Params {
		if i > 0 {
			out += ", "
		}
		out += EscapeIdent(p.Ident.Name)
	}
	return out
}

func renderInvokeStepC(w *outputWriter, iface *MIRInterface, fn MIRFunction, step argStep) {
	switch step.kind {
	case stepInputPrimitive:
		w.writeil(fmt.Sprintf("// unpack input primitive %s", step.param.Ident.Name))
	case stepInputPrimitiveBuffer, stepInputStructBuffer:
		w.writeil(fmt.Sprintf("// unpack input buffer %s", step.param.Ident.Name))
	case stepInputStruct:
		w.writeil(fmt.Sprintf("// unpack input struct %s", step.param.Ident.Name))
	case stepInputObject, stepInputObjectArray:
		w.writeil(fmt.Sprintf("// unpack input object %s", step.param.Ident.Name))
	case stepInputBundled:
		w.writeil("// unpack bundled input primitives")
	case stepOutputPrimitive, stepOutputPrimitiveBuffer, stepOutputStructBuffer:
		w.writeil(fmt.Sprintf("// reserve output slot %s", step.param.Ident.Name))
	case stepOutputStruct:
		w.writeil(fmt.Sprintf("// reserve output struct %s", step.param.Ident.Name))
	case stepOutputObject, stepOutputObjectArray:
		w.writeil(fmt.Sprintf("// reserve output object %s", step.param.Ident.Name))
	case stepOutputBundled:
		w.writeil("// reserve bundled output primitives")
	}
}

// reverseChain walks base-to-derived (root first) so a derived
// interface's emitted file defines its base's members before its own,
// in source order. Spec's "walk the base chain skipping itself" covers
// inherited re-emission; here we include self at the end.
func reverseChain(iface *MIRInterface) []*MIRInterface {
	full := iface.Iter()
	out := make([]*MIRInterface, len(full))
	for i, v := range full {
		out[len(full)-1-i] = v
	}
	return out
}
