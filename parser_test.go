package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePST(t *testing.T, path, src string) *PSTNode {
	t.Helper()
	toks, diag := NewLexer(path, []byte(src)).Tokenize()
	require.Nil(t, diag)
	pst, diag := NewParser(path, toks).ParseCompilationUnit()
	require.Nil(t, diag)
	return pst
}

func TestParserParsesIncludeConstStruct(t *testing.T) {
	src := `include "common.idl";
const uint8 kMax = 10;
struct Point {
  int32 x;
  int32 y;
};
`
	pst := parsePST(t, "u.idl", src)
	require.Equal(t, "compilation_unit", pst.Rule)
	require.Len(t, pst.Children, 3)
	assert.Equal(t, "include", pst.Children[0].Rule)
	assert.Equal(t, "const", pst.Children[1].Rule)
	assert.Equal(t, "struct", pst.Children[2].Rule)
}

func TestParserParsesInterfaceWithBaseMethodAndError(t *testing.T) {
	src := `interface Base {
  error NotFound;
  method ping();
};
interface Derived : Base {
  #[oneway]
  method notify(in int32 code, out uint8[16] data);
};
`
	pst := parsePST(t, "u.idl", src)
	require.Len(t, pst.Children, 2)

	base := pst.Children[0]
	assert.Equal(t, "interface", base.Rule)

	derived := pst.Children[1]
	assert.Equal(t, "interface", derived.Rule)
	found := false
	for _, c := range derived.Children {
		if c.Rule == "base" {
			found = true
			assert.Equal(t, "Base", c.Token.Text)
		}
	}
	assert.True(t, found, "expected a base child node")
}

func TestParserRejectsDuplicateMethodAttribute(t *testing.T) {
	src := `interface I {
  #[oneway] #[oneway]
  method m();
}
`
	toks, diag := NewLexer("u.idl", []byte(src)).Tokenize()
	require.Nil(t, diag)
	_, diag = NewParser("u.idl", toks).ParseCompilationUnit()
	require.NotNil(t, diag)
	assert.Equal(t, KindParse, diag.Kind)
}

func TestParserRejectsMissingSemicolon(t *testing.T) {
	src := `struct A { int32 x }`
	toks, diag := NewLexer("u.idl", []byte(src)).Tokenize()
	require.Nil(t, diag)
	_, diag = NewParser("u.idl", toks).ParseCompilationUnit()
	require.NotNil(t, diag)
}

func TestParserParsesArrayParamWithBound(t *testing.T) {
	src := `interface I {
  method take(in int32[4] values);
};
`
	pst := parsePST(t, "u.idl", src)
	method := pst.Children[0].Children[len(pst.Children[0].Children)-1]
	require.Equal(t, "method", method.Rule)
	var param *PSTNode
	for _, c := range method.Children {
		if c.Rule == "param" {
			param = c
		}
	}
	require.NotNil(t, param)
	var sawBound bool
	for _, c := range param.Children {
		if c.Rule == "bound" {
			sawBound = true
			assert.Equal(t, "4", c.Token.Text)
		}
	}
	assert.True(t, sawBound)
}
