package corelang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := newLexer("", src).lex()
	require.NoError(t, err)
	return tokens
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexDeclaration(t *testing.T) {
	tokens := lexAll(t, "module A\nx = 1\n")
	assert.Equal(t,
		[]Kind{TokModule, TokIdent, TokIdent, TokEquals, TokInt, TokEOF},
		kinds(tokens))
	assert.Equal(t, "A", tokens[1].Text)
	assert.Equal(t, "1", tokens[4].Text)
}

func TestLexSymbols(t *testing.T) {
	tokens := lexAll(t, `\x -> (f . g) ; do end`)
	assert.Equal(t,
		[]Kind{TokBackslash, TokIdent, TokArrow, TokLParen, TokIdent, TokDot, TokIdent, TokRParen, TokSemi, TokDo, TokEnd, TokEOF},
		kinds(tokens))
}

func TestLexStringEscapes(t *testing.T) {
	tokens := lexAll(t, `s = "a\nb\"c\\d"`)
	require.Equal(t, TokString, tokens[2].Kind)
	assert.Equal(t, "a\nb\"c\\d", tokens[2].Text)
}

func TestLexComments(t *testing.T) {
	tokens := lexAll(t, "-- leading comment\nx = 1 -- trailing\ny = 2\n")
	assert.Equal(t,
		[]Kind{TokIdent, TokEquals, TokInt, TokIdent, TokEquals, TokInt, TokEOF},
		kinds(tokens))
}

func TestLexPositions(t *testing.T) {
	tokens := lexAll(t, "module A\nx = 1\n")
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Col)
	assert.Equal(t, 2, tokens[2].Line, "x is on line 2")
	assert.Equal(t, 1, tokens[2].Col)
	assert.Equal(t, 5, tokens[4].Col, "literal is at column 5")
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `s = "abc`},
		{"string with newline", "s = \"ab\nc\""},
		{"unknown escape", `s = "\q"`},
		{"stray character", "x = @"},
		{"lone dash", "x = - y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLexer("test.lum", tt.src).lex()
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "test.lum", perr.Origin)
		})
	}
}

func TestLexPrimedIdentifier(t *testing.T) {
	tokens := lexAll(t, "x' = f'' y_2")
	assert.Equal(t, "x'", tokens[0].Text)
	assert.Equal(t, "f''", tokens[2].Text)
	assert.Equal(t, "y_2", tokens[3].Text)
}
