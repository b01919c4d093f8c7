package idlc

// Parser consumes a token stream and builds a PST, one grammar rule at a
// time. It keeps a flat token slice and an index rather than teacher's
// rune-cursor/backtracking-stack machinery (base_parser.go): the Mink
// grammar has no recursive meta-rules to backtrack through, just a fixed
// handful of top-level productions, so plain one-token lookahead recursive
// descent is the idiomatic fit.
type Parser struct {
	path   string
	tokens []Token
	pos    int
}

func NewParser(path string, tokens []Token) *Parser {
	return &Parser{path: path, tokens: tokens}
}

func (p *Parser) peek() Token { return p.tokens[p.pos] }

func (p *Parser) at(kind TokenKind) bool { return p.peek().Kind == kind }

func (p *Parser) atKeyword(word string) bool {
	return p.peek().Kind == TokIdent && p.peek().Text == word
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kind TokenKind, what string) (Token, *Diagnostic) {
	if !p.at(kind) {
		return Token{}, p.errorf("expected %s, found %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(word string) (Token, *Diagnostic) {
	if !p.atKeyword(word) {
		return Token{}, p.errorf("expected `%s`, found %q", word, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) *Diagnostic {
	return fatalAt(KindParse, p.path, p.peek().Span, format, args...)
}

// ParseCompilationUnit parses the full token stream into a PST rooted at
// "compilation_unit", mirroring the grammar summary in spec §6.
func (p *Parser) ParseCompilationUnit() (*PSTNode, *Diagnostic) {
	start := p.peek().Span
	var children []*PSTNode
	var pendingDoc *Token

	for !p.at(TokEOF) {
		if p.at(TokDocComment) {
			tok := p.advance()
			pendingDoc = &tok
			continue
		}

		var (
			node *PSTNode
			diag *Diagnostic
		)
		switch {
		case p.atKeyword("include"):
			node, diag = p.parseInclude()
		case p.atKeyword("const"):
			node, diag = p.parseConst()
		case p.atKeyword("struct"):
			node, diag = p.parseStruct()
		case p.atKeyword("interface"):
			node, diag = p.parseInterface(pendingDoc)
			pendingDoc = nil
		default:
			diag = p.errorf("expected `include`, `const`, `struct`, or `interface`, found %q", p.peek().Text)
		}
		if diag != nil {
			return nil, diag
		}
		children = append(children, node)
	}

	end := p.peek().Span
	return ruleNode("compilation_unit", NewSpan(start.Start, end.End), children...), nil
}

func (p *Parser) parseInclude() (*PSTNode, *Diagnostic) {
	kw, diag := p.expectKeyword("include")
	if diag != nil {
		return nil, diag
	}
	str, diag := p.expect(TokString, "a quoted include path")
	if diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}
	return ruleNode("include", NewSpan(kw.Span.Start, semi.Span.End), leafNode("path", str)), nil
}

func (p *Parser) parseConst() (*PSTNode, *Diagnostic) {
	kw, diag := p.expectKeyword("const")
	if diag != nil {
		return nil, diag
	}
	typeTok, diag := p.expect(TokIdent, "a primitive type")
	if diag != nil {
		return nil, diag
	}
	ident, diag := p.expect(TokIdent, "an identifier")
	if diag != nil {
		return nil, diag
	}
	if _, diag := p.expect(TokEquals, "`=`"); diag != nil {
		return nil, diag
	}
	lit, diag := p.expect(TokNumber, "a literal")
	if diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}
	return ruleNode("const", NewSpan(kw.Span.Start, semi.Span.End),
		leafNode("type", typeTok), leafNode("ident", ident), leafNode("literal", lit)), nil
}

func (p *Parser) parseStruct() (*PSTNode, *Diagnostic) {
	kw, diag := p.expectKeyword("struct")
	if diag != nil {
		return nil, diag
	}
	ident, diag := p.expect(TokIdent, "an identifier")
	if diag != nil {
		return nil, diag
	}
	if _, diag := p.expect(TokLBrace, "`{`"); diag != nil {
		return nil, diag
	}

	children := []*PSTNode{leafNode("ident", ident)}
	for !p.at(TokRBrace) {
		field, diag := p.parseStructField()
		if diag != nil {
			return nil, diag
		}
		children = append(children, field)
	}
	if _, diag := p.expect(TokRBrace, "`}`"); diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}
	return ruleNode("struct", NewSpan(kw.Span.Start, semi.Span.End), children...), nil
}

func (p *Parser) parseStructField() (*PSTNode, *Diagnostic) {
	typeNode, diag := p.parseTypeRef()
	if diag != nil {
		return nil, diag
	}
	var countTok *Token
	if p.at(TokLBracket) {
		p.advance()
		if !p.at(TokRBracket) {
			n, diag := p.expect(TokNumber, "an array count")
			if diag != nil {
				return nil, diag
			}
			countTok = &n
		}
		if _, diag := p.expect(TokRBracket, "`]`"); diag != nil {
			return nil, diag
		}
	}
	ident, diag := p.expect(TokIdent, "a field name")
	if diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}
	children := []*PSTNode{typeNode, leafNode("ident", ident)}
	if countTok != nil {
		children = append(children, leafNode("count", *countTok))
	}
	return ruleNode("field", NewSpan(typeNode.Span.Start, semi.Span.End), children...), nil
}

// parseTypeRef parses a bare type name: a primitive keyword, `interface`,
// or a custom identifier. Array brackets are handled by the caller since
// in/out parameters and struct fields attach them slightly differently.
func (p *Parser) parseTypeRef() (*PSTNode, *Diagnostic) {
	tok, diag := p.expect(TokIdent, "a type name")
	if diag != nil {
		return nil, diag
	}
	return leafNode("type", tok), nil
}

func (p *Parser) parseInterface(doc *Token) (*PSTNode, *Diagnostic) {
	kw, diag := p.expectKeyword("interface")
	if diag != nil {
		return nil, diag
	}
	ident, diag := p.expect(TokIdent, "an identifier")
	if diag != nil {
		return nil, diag
	}

	var base *PSTNode
	if p.at(TokColon) {
		p.advance()
		baseIdent, diag := p.expect(TokIdent, "a base interface name")
		if diag != nil {
			return nil, diag
		}
		base = leafNode("base", baseIdent)
	}

	if _, diag := p.expect(TokLBrace, "`{`"); diag != nil {
		return nil, diag
	}

	children := []*PSTNode{leafNode("ident", ident)}
	if base != nil {
		children = append(children, base)
	}
	if doc != nil {
		children = append(children, leafNode("doc", *doc))
	}

	var pendingMethodDoc *Token
	for !p.at(TokRBrace) {
		if p.at(TokDocComment) {
			tok := p.advance()
			pendingMethodDoc = &tok
			continue
		}
		var (
			node *PSTNode
			diag *Diagnostic
		)
		switch {
		case p.atKeyword("const"):
			node, diag = p.parseConst()
		case p.atKeyword("error"):
			node, diag = p.parseError()
		case p.atKeyword("method") || p.at(TokHash):
			node, diag = p.parseMethod(pendingMethodDoc)
			pendingMethodDoc = nil
		default:
			diag = p.errorf("expected `const`, `method`, or `error` inside interface body, found %q", p.peek().Text)
		}
		if diag != nil {
			return nil, diag
		}
		children = append(children, node)
	}
	if _, diag := p.expect(TokRBrace, "`}`"); diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}
	return ruleNode("interface", NewSpan(kw.Span.Start, semi.Span.End), children...), nil
}

func (p *Parser) parseError() (*PSTNode, *Diagnostic) {
	kw, diag := p.expectKeyword("error")
	if diag != nil {
		return nil, diag
	}
	ident, diag := p.expect(TokIdent, "an identifier")
	if diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}
	return ruleNode("error", NewSpan(kw.Span.Start, semi.Span.End), leafNode("ident", ident)), nil
}

// parseMethod parses an optional `#[attr]` line, then `method IDENT ( PARAM,* );`.
func (p *Parser) parseMethod(doc *Token) (*PSTNode, *Diagnostic) {
	startSpan := p.peek().Span
	var attrs []*PSTNode
	for p.at(TokHash) {
		p.advance()
		if _, diag := p.expect(TokLBracket, "`[`"); diag != nil {
			return nil, diag
		}
		attrIdent, diag := p.expect(TokIdent, "an attribute name")
		if diag != nil {
			return nil, diag
		}
		for _, a := range attrs {
			if a.Token.Text == attrIdent.Text {
				return nil, p.errorf("duplicate method attribute `%s`", attrIdent.Text)
			}
		}
		attrs = append(attrs, leafNode("attr", attrIdent))
		if _, diag := p.expect(TokRBracket, "`]`"); diag != nil {
			return nil, diag
		}
	}

	if _, diag := p.expectKeyword("method"); diag != nil {
		return nil, diag
	}
	ident, diag := p.expect(TokIdent, "a method name")
	if diag != nil {
		return nil, diag
	}
	if _, diag := p.expect(TokLParen, "`(`"); diag != nil {
		return nil, diag
	}

	var params []*PSTNode
	for !p.at(TokRParen) {
		if len(params) > 0 {
			if _, diag := p.expect(TokComma, "`,`"); diag != nil {
				return nil, diag
			}
		}
		param, diag := p.parseParam()
		if diag != nil {
			return nil, diag
		}
		params = append(params, param)
	}
	if _, diag := p.expect(TokRParen, "`)`"); diag != nil {
		return nil, diag
	}
	semi, diag := p.expect(TokSemicolon, "`;`")
	if diag != nil {
		return nil, diag
	}

	children := append([]*PSTNode{}, attrs...)
	children = append(children, leafNode("ident", ident))
	if doc != nil {
		children = append(children, leafNode("doc", *doc))
	}
	children = append(children, params...)
	return ruleNode("method", NewSpan(startSpan.Start, semi.Span.End), children...), nil
}

func (p *Parser) parseParam() (*PSTNode, *Diagnostic) {
	if !p.atKeyword("in") && !p.atKeyword("out") {
		return nil, p.errorf("expected `in` or `out`, found %q", p.peek().Text)
	}
	dirTok := p.advance()

	var typeName string
	var typeSpan Span
	isArray := false
	hasBound := false
	boundTok := Token{}

	switch {
	case p.atKeyword("buffer"):
		typeTok := p.advance()
		typeName, typeSpan = "uint8", typeTok.Span
		isArray = true
	default:
		typeTok, diag := p.expect(TokIdent, "a type name")
		if diag != nil {
			return nil, diag
		}
		typeName, typeSpan = typeTok.Text, typeTok.Span
		if p.at(TokLBracket) {
			p.advance()
			isArray = true
			if !p.at(TokRBracket) {
				n, diag := p.expect(TokNumber, "an array bound")
				if diag != nil {
					return nil, diag
				}
				boundTok = n
				hasBound = true
			}
			if _, diag := p.expect(TokRBracket, "`]`"); diag != nil {
				return nil, diag
			}
		}
	}

	ident, diag := p.expect(TokIdent, "a parameter name")
	if diag != nil {
		return nil, diag
	}

	children := []*PSTNode{
		leafNode("dir", dirTok),
		leafNode("type", Token{Kind: TokIdent, Text: typeName, Span: typeSpan}),
		leafNode("ident", ident),
	}
	if isArray {
		children = append(children, ruleNode("array", typeSpan))
	}
	if hasBound {
		children = append(children, leafNode("bound", boundTok))
	}
	return ruleNode("param", NewSpan(dirTok.Span.Start, ident.Span.End), children...), nil
}
