package lexer

import (
	"bytes"
	"testing"

	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) ([]token.Token, *errs.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := errs.New(&buf)
	toks := New(src, sink).ScanTokens()
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanTokens_Punctuation(t *testing.T) {
	toks, sink := scan(t, "(){},.?:;")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.DOT, token.QUESTION, token.COLON, token.SEMICOLON, token.EOF,
	}, kinds(toks))
}

func TestScanTokens_AugmentedOperators(t *testing.T) {
	toks, sink := scan(t, "- -= % %= + += * *= ** / /= ! != = == > >= < <=")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{
		token.MINUS, token.MINUSEQ, token.MODULUS, token.MODEQ,
		token.PLUS, token.PLUSEQ, token.STAR, token.STAREQ, token.POWER,
		token.SLASH, token.SLASHEQ, token.BANG, token.BANGEQ,
		token.EQ, token.EQEQ, token.GT, token.GTEQ, token.LT, token.LTEQ, token.EOF,
	}, kinds(toks))
}

func TestScanTokens_AndOr(t *testing.T) {
	toks, sink := scan(t, "true && false || true")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{token.TRUE, token.AND, token.FALSE, token.OR, token.TRUE, token.EOF}, kinds(toks))
}

func TestScanTokens_SolitaryAmpersandIsError(t *testing.T) {
	_, sink := scan(t, "&")
	assert.True(t, sink.HadError)
}

func TestScanTokens_LineComment(t *testing.T) {
	toks, sink := scan(t, "1; // trailing comment\n2;")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{token.NUMBER, token.SEMICOLON, token.NUMBER, token.SEMICOLON, token.EOF}, kinds(toks))
	assert.Equal(t, 2, toks[2].Line)
}

func TestScanTokens_BlockCommentTracksLines(t *testing.T) {
	toks, sink := scan(t, "/* line one\nline two */ 1;")
	require.False(t, sink.HadError)
	assert.Equal(t, 2, toks[0].Line)
}

func TestScanTokens_UnterminatedBlockCommentIsError(t *testing.T) {
	_, sink := scan(t, "/* never closed")
	assert.True(t, sink.HadError)
}

func TestScanTokens_StringLiteral(t *testing.T) {
	toks, sink := scan(t, `"hello\nworld"`)
	require.False(t, sink.HadError)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello\\nworld", toks[0].Literal)
}

func TestScanTokens_UnterminatedStringIsError(t *testing.T) {
	_, sink := scan(t, `"never closed`)
	assert.True(t, sink.HadError)
}

func TestScanTokens_NumberLiteral(t *testing.T) {
	toks, sink := scan(t, "3.14 42")
	require.False(t, sink.HadError)
	assert.Equal(t, 3.14, toks[0].Literal)
	assert.Equal(t, 42.0, toks[1].Literal)
}

func TestScanTokens_NumberTrailingDotWithoutDigitStopsAtDot(t *testing.T) {
	toks, sink := scan(t, "1.")
	require.False(t, sink.HadError)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, token.DOT, toks[1].Kind)
}

func TestScanTokens_KeywordsAndIdentifiers(t *testing.T) {
	toks, sink := scan(t, "var let const fun fn echo print this self while")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{
		token.VAR, token.LET, token.CONST, token.FUN, token.FN,
		token.ECHO, token.PRINT, token.THIS, token.SELF, token.WHILE, token.EOF,
	}, kinds(toks))
}

func TestScanTokens_IdentifierNotKeyword(t *testing.T) {
	toks, sink := scan(t, "echoing")
	require.False(t, sink.HadError)
	assert.Equal(t, token.IDENTIFIER, toks[0].Kind)
	assert.Equal(t, "echoing", toks[0].Lexeme)
}

func TestScanTokens_UnknownCharacterContinuesScanning(t *testing.T) {
	toks, sink := scan(t, "1 @ 2;")
	assert.True(t, sink.HadError)
	assert.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.SEMICOLON, token.EOF}, kinds(toks))
}

func TestScanTokens_RoundTripLexemesMatchSource(t *testing.T) {
	src := "var x = 1 + 2 * (3 - 4) / 5 % 6 ** 7;"
	toks, sink := scan(t, src)
	require.False(t, sink.HadError)
	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		rebuilt += tok.Lexeme
	}
	assert.Equal(t, "varx=1+2*(3-4)/5%6**7;", rebuilt)
}
