package corelang

import (
	"fmt"
	"strconv"

	"github.com/lumenlang/lumenc/internal/compiler/input"
)

// ParseModules lexes and parses every source unit in order. A unit may
// declare several modules. The first malformed unit aborts parsing.
func ParseModules(units []input.SourceUnit) ([]*Module, error) {
	var modules []*Module
	for _, unit := range units {
		mods, err := parseUnit(unit.Origin, unit.Text)
		if err != nil {
			return nil, err
		}
		modules = append(modules, mods...)
	}
	return modules, nil
}

func parseUnit(origin, src string) ([]*Module, error) {
	tokens, err := newLexer(origin, src).lex()
	if err != nil {
		return nil, err
	}
	p := &parser{origin: origin, tokens: tokens}
	return p.parseModules()
}

type parser struct {
	origin string
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) take() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind Kind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return Token{}, p.errorf(tok, "expected %s, found %s", kind, describe(tok))
	}
	return p.take(), nil
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return &ParseError{
		Origin: p.origin,
		Line:   tok.Line,
		Col:    tok.Col,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseModules() ([]*Module, error) {
	var modules []*Module
	for p.peek().Kind != TokEOF {
		m, err := p.parseModule()
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	if len(modules) == 0 {
		tok := p.peek()
		return nil, p.errorf(tok, "source declares no modules")
	}
	return modules, nil
}

func (p *parser) parseModule() (*Module, error) {
	if _, err := p.expect(TokModule); err != nil {
		return nil, err
	}
	name, err := p.parseModuleName()
	if err != nil {
		return nil, err
	}

	m := &Module{Name: name, Origin: p.origin}
	for p.peek().Kind == TokIdent {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		m.Decls = append(m.Decls, decl)
	}

	if next := p.peek(); next.Kind != TokModule && next.Kind != TokEOF {
		return nil, p.errorf(next, "expected declaration or module header, found %s", describe(next))
	}
	return m, nil
}

// parseModuleName accepts dotted names such as Data.List.
func (p *parser) parseModuleName() (string, error) {
	tok, err := p.expect(TokIdent)
	if err != nil {
		return "", err
	}
	name := tok.Text
	for p.peek().Kind == TokDot {
		p.take()
		part, err := p.expect(TokIdent)
		if err != nil {
			return "", err
		}
		name += "." + part.Text
	}
	return name, nil
}

func (p *parser) parseDecl() (Decl, error) {
	name, err := p.expect(TokIdent)
	if err != nil {
		return Decl{}, err
	}
	if _, err := p.expect(TokEquals); err != nil {
		return Decl{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return Decl{}, err
	}
	return Decl{Name: name.Text, Body: body}, nil
}

func (p *parser) parseExpr() (Expr, error) {
	if p.peek().Kind == TokBackslash {
		return p.parseLambda()
	}
	return p.parseApply()
}

func (p *parser) parseLambda() (Expr, error) {
	p.take() // backslash
	param, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Lambda{Param: param.Text, Body: body}, nil
}

// parseApply parses left-associative application. Application stops at a
// declaration boundary: an identifier immediately followed by '='.
func (p *parser) parseApply() (Expr, error) {
	fn, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() && !p.atDeclBoundary() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = &Apply{Fn: fn, Arg: arg}
	}
	return fn, nil
}

func (p *parser) startsAtom() bool {
	switch p.peek().Kind {
	case TokInt, TokString, TokIdent, TokLParen, TokDo:
		return true
	default:
		return false
	}
}

func (p *parser) atDeclBoundary() bool {
	return p.peek().Kind == TokIdent && p.peekAt(1).Kind == TokEquals
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokInt:
		p.take()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errorf(tok, "integer literal out of range: %s", tok.Text)
		}
		return &IntLit{Value: value}, nil

	case TokString:
		p.take()
		return &StrLit{Value: tok.Text}, nil

	case TokIdent:
		return p.parseReference()

	case TokLParen:
		p.take()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case TokDo:
		return p.parseDo()

	default:
		return nil, p.errorf(tok, "expected expression, found %s", describe(tok))
	}
}

// parseReference parses a plain or qualified reference. In a dotted chain
// the final segment is the declaration name and everything before it is
// the module name.
func (p *parser) parseReference() (Expr, error) {
	first, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	segments := []string{first.Text}
	for p.peek().Kind == TokDot {
		p.take()
		part, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		segments = append(segments, part.Text)
	}
	if len(segments) == 1 {
		return &Ref{Name: segments[0]}, nil
	}
	last := len(segments) - 1
	return &QualRef{
		Module: joinDotted(segments[:last]),
		Name:   segments[last],
	}, nil
}

func (p *parser) parseDo() (Expr, error) {
	p.take() // do
	var steps []Expr
	for {
		step, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		if p.peek().Kind == TokSemi {
			p.take()
			continue
		}
		break
	}
	if _, err := p.expect(TokEnd); err != nil {
		return nil, err
	}
	return &Do{Steps: steps}, nil
}

func describe(tok Token) string {
	if tok.Kind == TokIdent {
		return fmt.Sprintf("identifier %q", tok.Text)
	}
	return tok.Kind.String()
}

func joinDotted(parts []string) string {
	out := parts[0]
	for _, part := range parts[1:] {
		out += "." + part
	}
	return out
}
