package corelang

import (
	"fmt"
	"strings"
	"unicode"
)

// lexer turns Lumen source text into a token stream. Line comments start
// with "--" and run to end of line.
type lexer struct {
	src    string
	origin string
	pos    int
	line   int
	col    int
}

func newLexer(origin, src string) *lexer {
	return &lexer{src: src, origin: origin, line: 1, col: 1}
}

// lex tokenizes the whole source, appending a trailing EOF token.
func (l *lexer) lex() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipTrivia()

	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Line: line, Col: col}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '=':
		l.advance(1)
		return Token{Kind: TokEquals, Text: "=", Line: line, Col: col}, nil
	case c == '\\':
		l.advance(1)
		return Token{Kind: TokBackslash, Text: "\\", Line: line, Col: col}, nil
	case c == '(':
		l.advance(1)
		return Token{Kind: TokLParen, Text: "(", Line: line, Col: col}, nil
	case c == ')':
		l.advance(1)
		return Token{Kind: TokRParen, Text: ")", Line: line, Col: col}, nil
	case c == '.':
		l.advance(1)
		return Token{Kind: TokDot, Text: ".", Line: line, Col: col}, nil
	case c == ';':
		l.advance(1)
		return Token{Kind: TokSemi, Text: ";", Line: line, Col: col}, nil
	case c == '-':
		if strings.HasPrefix(l.src[l.pos:], "->") {
			l.advance(2)
			return Token{Kind: TokArrow, Text: "->", Line: line, Col: col}, nil
		}
		return Token{}, l.errorf(line, col, "unexpected character %q", c)
	case c == '"':
		return l.lexString(line, col)
	case c >= '0' && c <= '9':
		return l.lexInt(line, col), nil
	case isIdentStart(rune(c)):
		return l.lexIdent(line, col), nil
	default:
		return Token{}, l.errorf(line, col, "unexpected character %q", c)
	}
}

// skipTrivia consumes whitespace and line comments.
func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance(1)
		case strings.HasPrefix(l.src[l.pos:], "--"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance(1)
			}
		default:
			return
		}
	}
}

func (l *lexer) lexString(line, col int) (Token, error) {
	var sb strings.Builder
	l.advance(1) // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			l.advance(1)
			return Token{Kind: TokString, Text: sb.String(), Line: line, Col: col}, nil
		case '\n':
			return Token{}, l.errorf(line, col, "unterminated string literal")
		case '\\':
			if l.pos+1 >= len(l.src) {
				return Token{}, l.errorf(line, col, "unterminated string literal")
			}
			esc := l.src[l.pos+1]
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteByte(esc)
			default:
				return Token{}, l.errorf(l.line, l.col, "unknown escape sequence \\%c", esc)
			}
			l.advance(2)
		default:
			sb.WriteByte(c)
			l.advance(1)
		}
	}
	return Token{}, l.errorf(line, col, "unterminated string literal")
}

func (l *lexer) lexInt(line, col int) Token {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.advance(1)
	}
	return Token{Kind: TokInt, Text: l.src[start:l.pos], Line: line, Col: col}
}

func (l *lexer) lexIdent(line, col int) Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(rune(l.src[l.pos])) {
		l.advance(1)
	}
	text := l.src[start:l.pos]

	kind := TokIdent
	switch text {
	case "module":
		kind = TokModule
	case "do":
		kind = TokDo
	case "end":
		kind = TokEnd
	}
	return Token{Kind: kind, Text: text, Line: line, Col: col}
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &ParseError{
		Origin: l.origin,
		Line:   line,
		Col:    col,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}
