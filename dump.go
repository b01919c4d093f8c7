package idlc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DumpPST renders a parse tree for --dump pst.
func DumpPST(root *PSTNode) string {
	return root.PrettyString()
}

// astDumper walks the AST with teacher's treePrinter (tree_printer.go),
// reused here instead of a bespoke indenting writer so --dump ast shares
// its line-padding machinery. Lines are written as given; the printer's
// escape format is not applied to them.
type astDumper struct {
	tp *treePrinter[string]
}

func newASTDumper() *astDumper {
	format := func(input string, token string) string { return escapeLiteral(input) }
	return &astDumper{tp: newTreePrinter(format)}
}

func (d *astDumper) line(format string, args ...any) {
	d.tp.pwritel(fmt.Sprintf(format, args...))
}

// DumpAST renders a compilation unit's AST for --dump ast.
func DumpAST(unit *CompilationUnit) string {
	d := newASTDumper()
	d.line("compilation_unit %s", unit.Path)
	d.tp.indent("  ")
	for _, node := range unit.Nodes {
		d.dumpTopLevel(node)
	}
	d.tp.unindent()
	return d.tp.output.String()
}

func (d *astDumper) dumpTopLevel(node TopLevel) {
	switch n := node.(type) {
	case IncludeNode:
		d.line("include %q", n.Path.Name)
	case ConstNode:
		d.dumpConst(n.Const)
	case StructNode:
		d.dumpStruct(n.Struct)
	case InterfaceNodeTop:
		d.dumpInterface(n.Interface)
	}
}

func (d *astDumper) dumpConst(c Const) {
	d.line("const %s %s = %s", c.Primitive, c.Ident.Name, c.LiteralText)
}

func (d *astDumper) dumpStruct(s Struct) {
	d.line("struct %s", s.Ident.Name)
	d.tp.indent("  ")
	for _, f := range s.Fields {
		if f.Count > 1 {
			d.line("field %s %s[%d]", f.Ident.Name, f.Type, f.Count)
		} else {
			d.line("field %s %s", f.Ident.Name, f.Type)
		}
	}
	d.tp.unindent()
}

func (d *astDumper) dumpInterface(i Interface) {
	if i.Base != nil {
		d.line("interface %s : %s", i.Ident.Name, i.Base.Name)
	} else {
		d.line("interface %s", i.Ident.Name)
	}
	d.tp.indent("  ")
	for _, node := range i.Nodes {
		switch n := node.(type) {
		case IfaceConst:
			d.dumpConst(n.Const)
		case IfaceError:
			d.line("error %s", n.Ident.Name)
		case IfaceFunction:
			d.dumpFunction(n.Function)
		}
	}
	d.tp.unindent()
}

func (d *astDumper) dumpFunction(f Function) {
	d.line("method %s", f.Ident.Name)
	d.tp.indent("  ")
	for _, p := range f.Params {
		dir := "in"
		if p.Direction == DirOut {
			dir = "out"
		}
		d.line("param %s %s %s", dir, p.Type(), p.Ident.Name)
	}
	d.tp.unindent()
}

// DumpMIR renders the lowered MIR for --dump mir.
func DumpMIR(mir *MIR) string {
	d := newASTDumper()
	d.line("mir %s", mir.Tag)
	d.tp.indent("  ")
	for _, st := range mir.Structs {
		d.line("struct %s size=%d align=%d class=%v", st.Ident.Name, st.Size, st.Alignment, st.Class)
	}
	for _, iface := range mir.Interfaces {
		d.line("interface %s", iface.Ident.Name)
		d.tp.indent("  ")
		for _, fn := range iface.Functions {
			d.line("method %s op=%s", fn.Ident.Name, opcodeHex(fn.Opcode))
		}
		for _, e := range iface.Errors {
			d.line("error %s value=%d", e.Ident.Name, e.Value)
		}
		d.tp.unindent()
	}
	d.tp.unindent()
	return d.tp.output.String()
}

// DumpYAML renders any dumpable phase value as YAML, for tooling that
// wants to diff successive compiler runs mechanically rather than parse
// the human-readable tree dump.
func DumpYAML(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
