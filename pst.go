package idlc

import "strings"

// PSTNode is a generic parse-tree node: a grammar rule name, its child
// nodes (sub-rules), and for leaves the literal Token matched. This is
// the "parse tree internal to A" the data model calls out — the AST
// builder (builder.go) is the only consumer outside the parser itself,
// and --dump pst prints it directly.
type PSTNode struct {
	Rule     string
	Token    *Token
	Children []*PSTNode
	Span     Span
}

func leafNode(rule string, tok Token) *PSTNode {
	return &PSTNode{Rule: rule, Token: &tok, Span: tok.Span}
}

func ruleNode(rule string, span Span, children ...*PSTNode) *PSTNode {
	return &PSTNode{Rule: rule, Children: children, Span: span}
}

// PrettyString renders the parse tree as an indented outline, one node
// per line: the rule name, then the token text for leaves.
func (n *PSTNode) PrettyString() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *PSTNode) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Rule)
	if n.Token != nil {
		b.WriteString(" ")
		b.WriteString(n.Token.Text)
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}
