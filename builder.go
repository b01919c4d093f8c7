package idlc

import "strconv"

// ParseFile runs the full A→B pipeline for a single source file: lex,
// parse into a PST, then lift the PST into a typed AST. cfg controls
// whether out-of-range literals are fatal or passed through.
func ParseFile(path string, src []byte, cfg *CompilerConfig) (*CompilationUnit, *PSTNode, *Diagnostic) {
	lexer := NewLexer(path, src)
	tokens, diag := lexer.Tokenize()
	if diag != nil {
		return nil, nil, diag
	}

	parser := NewParser(path, tokens)
	pst, diag := parser.ParseCompilationUnit()
	if diag != nil {
		return nil, nil, diag
	}

	unit, diag := buildCompilationUnit(pst, path, cfg)
	if diag != nil {
		return nil, pst, diag
	}
	return unit, pst, nil
}

func childrenByRule(n *PSTNode, rule string) []*PSTNode {
	var out []*PSTNode
	for _, c := range n.Children {
		if c.Rule == rule {
			out = append(out, c)
		}
	}
	return out
}

func childByRule(n *PSTNode, rule string) *PSTNode {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

func identFromLeaf(n *PSTNode) Ident {
	return NewIdent(n.Token.Text, n.Token.Span)
}

func buildCompilationUnit(root *PSTNode, path string, cfg *CompilerConfig) (*CompilationUnit, *Diagnostic) {
	unit := &CompilationUnit{Path: path}
	for _, c := range root.Children {
		var (
			node TopLevel
			diag *Diagnostic
		)
		switch c.Rule {
		case "include":
			node, diag = buildInclude(c)
		case "const":
			var cn Const
			cn, diag = buildConst(c, path, cfg)
			node = ConstNode{Const: cn}
		case "struct":
			var sn Struct
			sn, diag = buildStruct(c, path)
			node = StructNode{Struct: sn}
		case "interface":
			var in Interface
			in, diag = buildInterface(c, path, cfg)
			node = InterfaceNodeTop{Interface: in}
		}
		if diag != nil {
			return nil, diag
		}
		unit.Nodes = append(unit.Nodes, node)
	}
	return unit, nil
}

func buildInclude(n *PSTNode) (TopLevel, *Diagnostic) {
	pathLeaf := childByRule(n, "path")
	return IncludeNode{Path: identFromLeaf(pathLeaf)}, nil
}

func buildConst(n *PSTNode, path string, cfg *CompilerConfig) (Const, *Diagnostic) {
	typeLeaf := childByRule(n, "type")
	identLeaf := childByRule(n, "ident")
	litLeaf := childByRule(n, "literal")

	prim, ok := PrimitiveFromName(typeLeaf.Token.Text)
	if !ok {
		return Const{}, fatalAt(KindParse, path, typeLeaf.Token.Span, "unrecognized primitive type `%s`", typeLeaf.Token.Text)
	}

	if !cfg.AllowUndefinedBehavior {
		if diag := CheckLiteralRange(prim, litLeaf.Token.Text, path, litLeaf.Token.Span); diag != nil {
			return Const{}, diag
		}
	}

	return Const{
		Ident:       identFromLeaf(identLeaf),
		Primitive:   prim,
		LiteralText: litLeaf.Token.Text,
	}, nil
}

func buildStruct(n *PSTNode, path string) (Struct, *Diagnostic) {
	identLeaf := childByRule(n, "ident")
	s := Struct{Ident: identFromLeaf(identLeaf), OriginPath: path}

	seen := map[string]struct{}{}
	for _, f := range childrenByRule(n, "field") {
		field, diag := buildStructField(f, path)
		if diag != nil {
			return Struct{}, diag
		}
		if _, dup := seen[field.Ident.Name]; dup {
			return Struct{}, fatalAt(KindDuplicate, path, field.Ident.Span,
				"struct `%s` has duplicate field `%s`", s.Ident.Name, field.Ident.Name)
		}
		seen[field.Ident.Name] = struct{}{}
		s.Fields = append(s.Fields, field)
	}
	return s, nil
}

func buildStructField(n *PSTNode, path string) (StructField, *Diagnostic) {
	typeLeaf := childByRule(n, "type")
	identLeaf := childByRule(n, "ident")
	countLeaf := childByRule(n, "count")

	typ := resolveTypeRef(typeLeaf.Token.Text)
	count := Count(1)
	if countLeaf != nil {
		v, err := strconv.ParseUint(countLeaf.Token.Text, 10, 16)
		if err != nil || v == 0 {
			return StructField{}, fatalAt(KindRange, path, countLeaf.Token.Span,
				"array count must be a non-zero value up to 65535, found `%s`", countLeaf.Token.Text)
		}
		count = Count(v)
	}

	return StructField{
		Ident: identFromLeaf(identLeaf),
		Type:  typ,
		Count: count,
	}, nil
}

func resolveTypeRef(name string) Type {
	if prim, ok := PrimitiveFromName(name); ok {
		return PrimitiveType{Prim: prim}
	}
	if name == "interface" {
		return InterfaceType{}
	}
	return CustomType{Ident: NewIdentNoSpan(name)}
}

func buildInterface(n *PSTNode, path string, cfg *CompilerConfig) (Interface, *Diagnostic) {
	identLeaf := childByRule(n, "ident")
	iface := Interface{Ident: identFromLeaf(identLeaf), OriginPath: path}

	if baseLeaf := childByRule(n, "base"); baseLeaf != nil {
		b := identFromLeaf(baseLeaf)
		iface.Base = &b
	}

	for _, c := range n.Children {
		switch c.Rule {
		case "const":
			cn, diag := buildConst(c, path, cfg)
			if diag != nil {
				return Interface{}, diag
			}
			iface.Nodes = append(iface.Nodes, IfaceConst{Const: cn})
		case "error":
			errIdent := identFromLeaf(childByRule(c, "ident"))
			iface.Nodes = append(iface.Nodes, IfaceError{Ident: errIdent})
		case "method":
			fn, diag := buildFunction(c, path)
			if diag != nil {
				return Interface{}, diag
			}
			iface.Nodes = append(iface.Nodes, IfaceFunction{Function: fn})
		}
	}
	return iface, nil
}

func buildFunction(n *PSTNode, path string) (Function, *Diagnostic) {
	identLeaf := childByRule(n, "ident")
	fn := Function{Ident: identFromLeaf(identLeaf)}

	if docLeaf := childByRule(n, "doc"); docLeaf != nil {
		fn.Doc = &Documentation{Text: docLeaf.Token.Text}
	}

	for _, p := range childrenByRule(n, "param") {
		param, diag := buildParam(p, path)
		if diag != nil {
			return Function{}, diag
		}
		fn.Params = append(fn.Params, param)
	}
	return fn, nil
}

func buildParam(n *PSTNode, path string) (Param, *Diagnostic) {
	dirLeaf := childByRule(n, "dir")
	typeLeaf := childByRule(n, "type")
	identLeaf := childByRule(n, "ident")
	isArray := childByRule(n, "array") != nil
	boundLeaf := childByRule(n, "bound")

	typ := resolveTypeRef(typeLeaf.Token.Text)

	bound := 0
	hasBound := false
	if boundLeaf != nil {
		v, err := strconv.Atoi(boundLeaf.Token.Text)
		if err != nil {
			return Param{}, fatalAt(KindRange, path, boundLeaf.Token.Span, "invalid array bound `%s`", boundLeaf.Token.Text)
		}
		bound, hasBound = v, true
	}

	param := Param{Ident: identFromLeaf(identLeaf)}
	if dirLeaf.Token.Text == "in" {
		param.Direction = DirIn
		param.In = ParamTypeIn{IsArray: isArray, Type: typ, BoundedCount: bound, HasBoundCount: hasBound}
	} else {
		param.Direction = DirOut
		param.Out = ParamTypeOut{IsArray: isArray, Type: typ, BoundedCount: bound, HasBoundCount: hasBound}
	}
	return param, nil
}
