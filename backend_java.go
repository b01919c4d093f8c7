package idlc

import "fmt"

// JavaBackend emits a Java class per interface. --skel is rejected for
// Java at the frontend level (spec §6); GenerateInvoke still exists here
// so the Backend interface stays uniform, but the CLI never calls it for
// this backend.
type JavaBackend struct{}

func (JavaBackend) Name() string              { return "java" }
func (JavaBackend) MarkingStyle() MarkingStyle { return StyleJava }

func (JavaBackend) GenerateImplementation(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("    ")
	className := pascalCase(iface.Ident.Name)
	w.writel("package mink;")
	w.writel("")

	for _, st := range mir.Structs {
		renderStructJava(w, st)
	}

	w.writel(fmt.Sprintf("public final class %s {", className))
	w.indent()
	w.writeil("public final long invoke;")
	w.writeil("public final long context;")
	w.writel("")
	w.writeil(fmt.Sprintf("public %s(long invoke, long context) {", className))
	w.indent()
	w.writeil("this.invoke = invoke;")
	w.writeil("this.context = context;")
	w.unindent()
	w.writeil("}")
	w.writel("")

	for _, link := range reverseChain(iface) {
		for _, c := range link.Consts {
			w.writeil(fmt.Sprintf("public static final %s %s = %s;", javaTypeName(c.Primitive), upperSnake(c.Ident.Name), c.LiteralText))
		}
		for _, e := range link.Errors {
			w.writeil(fmt.Sprintf("public static final int ERR_%s = -%d;", upperSnake(e.Ident.Name), e.Value))
		}
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("public static final int OP_%s = %s;", upperSnake(fn.Ident.Name), opcodeHex(fn.Opcode)))
			doc := FormatDocumentation(fn.Doc, StyleJava)
			if doc != "" {
				w.write(doc)
			}
			w.writeil(fmt.Sprintf("public int %s(%s) {", EscapeIdent(fn.Ident.Name), javaParamList(fn)))
			w.indent()
			for _, step := range buildPlan(&fn) {
				renderInvokeStepJava(w, step)
			}
			w.writeil("return Invoke.call(this, OP_" + upperSnake(fn.Ident.Name) + ");")
			w.unindent()
			w.writeil("}")
		}
	}
	w.unindent()
	w.writel("}")
	return w.String()
}

func (JavaBackend) GenerateInvoke(mir *MIR, iface *MIRInterface, cfg *CompilerConfig) string {
	w := newOutputWriter("    ")
	w.writel("package mink;")
	w.writel("")
	w.writel(fmt.Sprintf("final class %sSkeleton {", pascalCase(iface.Ident.Name)))
	w.indent()
	w.writeil("static int invoke(int op, Object[] args) {")
	w.indent()
	w.writeil("switch (op) {")
	w.indent()
	for _, link := range reverseChain(iface) {
		for _, fn := range link.Functions {
			w.writeil(fmt.Sprintf("case %s:", opcodeHex(fn.Opcode)))
			w.indent()
			w.writeil(fmt.Sprintf("return %sImpl.%s(args);", pascalCase(iface.Ident.Name), EscapeIdent(fn.Ident.Name)))
			w.unindent()
		}
	}
	w.writeil("default: return -1;")
	w.unindent()
	w.writeil("}")
	w.unindent()
	w.writeil("}")
	w.unindent()
	w.writel("}")
	return w.String()
}

func renderStructJava(w *outputWriter, st *MIRStruct) {
	w.writel(fmt.Sprintf("final class %s {", pascalCase(st.Ident.Name)))
	w.indent()
	for _, f := range st.Fields {
		w.writeil(javaFieldDecl(f))
	}
	w.unindent()
	w.writel("}")
	w.writel("")
}

func javaFieldDecl(f MIRStructField) string {
	typeName := javaFieldTypeName(f.Type)
	if f.Count > 1 {
		return fmt.Sprintf("public %s[] %s = new %s[%d];", typeName, EscapeIdent(f.Ident.Name), typeName, f.Count)
	}
	return fmt.Sprintf("public %s %s;", typeName, EscapeIdent(f.Ident.Name))
}

func javaFieldTypeName(t MIRType) string {
	switch t.Kind {
	case MIRPrimitive:
		return javaTypeName(t.Prim)
	case MIRStructRef:
		return pascalCase(t.Struct.Ident.Name)
	case MIRObject:
		return "MinkObject"
	default:
		return "byte"
	}
}

func javaParamList(fn MIRFunction) string {
	out := ""
	for i, p := range fn.Params {
		if i > 0 {
			out += ", "
		}
		typeName := javaFieldTypeName(p.Shape.Type)
		if p.Shape.IsArray {
			typeName += "[]"
		}
		out += fmt.Sprintf("%s %s", typeName, EscapeIdent(p.Ident.Name))
	}
	return out
}

func renderInvokeStepJava(w *outputWriter, step argStep) {
	switch step.kind {
	case stepInputBundled:
		w.writeil("// pack bundled input primitives")
	case stepOutputBundled:
		w.writeil("// unpack bundled output primitives")
	default:
		w.writeil(fmt.Sprintf("// marshal %s", step.param.Ident.Name))
	}
}
