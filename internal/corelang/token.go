package corelang

// Kind classifies a lexical token.
type Kind int

const (
	TokEOF Kind = iota
	TokIdent
	TokInt
	TokString
	TokEquals
	TokBackslash
	TokArrow
	TokLParen
	TokRParen
	TokDot
	TokSemi
	TokModule
	TokDo
	TokEnd
)

var kindNames = map[Kind]string{
	TokEOF:       "end of input",
	TokIdent:     "identifier",
	TokInt:       "integer literal",
	TokString:    "string literal",
	TokEquals:    "'='",
	TokBackslash: "'\\'",
	TokArrow:     "'->'",
	TokLParen:    "'('",
	TokRParen:    "')'",
	TokDot:       "'.'",
	TokSemi:      "';'",
	TokModule:    "'module'",
	TokDo:        "'do'",
	TokEnd:       "'end'",
}

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}

// Token is one lexical token with its source position.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}
