package idlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenKinds(toks []Token) []TokenKind {
	kinds := make([]TokenKind, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}

func TestLexerTokenizesStructDeclaration(t *testing.T) {
	src := "struct Point {\n  x: int32;\n  y: int32;\n}\n"
	toks, diag := NewLexer("point.idl", []byte(src)).Tokenize()
	require.Nil(t, diag)

	assert.Equal(t, TokIdent, toks[0].Kind)
	assert.Equal(t, "struct", toks[0].Text)
	assert.Equal(t, TokEOF, toks[len(toks)-1].Kind)
}

func TestLexerScansDocComment(t *testing.T) {
	src := "/**\n * Adds two numbers.\n * Second line.\n */\nconst X: uint8 = 1;"
	toks, diag := NewLexer("x.idl", []byte(src)).Tokenize()
	require.Nil(t, diag)
	require.Equal(t, TokDocComment, toks[0].Kind)
	assert.Equal(t, "Adds two numbers.\nSecond line.", toks[0].Text)
}

func TestLexerScansNumberForms(t *testing.T) {
	cases := []string{"42", "-7", "0xFF", "3.14"}
	for _, c := range cases {
		toks, diag := NewLexer("n.idl", []byte(c)).Tokenize()
		require.Nil(t, diag, c)
		require.Equal(t, TokNumber, toks[0].Kind, c)
		assert.Equal(t, c, toks[0].Text, c)
	}
}

func TestLexerUnterminatedStringIsFatal(t *testing.T) {
	_, diag := NewLexer("s.idl", []byte(`"unterminated`)).Tokenize()
	require.NotNil(t, diag)
	assert.Equal(t, KindParse, diag.Kind)
}

func TestLexerUnterminatedBlockCommentIsFatal(t *testing.T) {
	_, diag := NewLexer("s.idl", []byte("/* never closed")).Tokenize()
	require.NotNil(t, diag)
	assert.Equal(t, KindParse, diag.Kind)
}

func TestLexerUnexpectedCharacterIsFatal(t *testing.T) {
	_, diag := NewLexer("s.idl", []byte("struct A { x: int32 @ }")).Tokenize()
	require.NotNil(t, diag)
	assert.Equal(t, KindParse, diag.Kind)
}

func TestLexerSkipsLineComments(t *testing.T) {
	src := "// a comment\nstruct A {}\n"
	toks, diag := NewLexer("a.idl", []byte(src)).Tokenize()
	require.Nil(t, diag)
	assert.Equal(t, "struct", toks[0].Text)
}

func TestLexerPunctuation(t *testing.T) {
	toks, diag := NewLexer("p.idl", []byte("{}()[];:,=#")).Tokenize()
	require.Nil(t, diag)
	want := []TokenKind{
		TokLBrace, TokRBrace, TokLParen, TokRParen, TokLBracket, TokRBracket,
		TokSemicolon, TokColon, TokComma, TokEquals, TokHash, TokEOF,
	}
	assert.Equal(t, want, tokenKinds(toks))
}
