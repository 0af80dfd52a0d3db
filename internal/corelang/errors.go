package corelang

import (
	"errors"
	"fmt"
)

// Compile error categories. Compile errors are terminal for the run; the
// driver prints them and exits nonzero.
var (
	ErrDuplicateModule   = errors.New("duplicate module")
	ErrUnknownModule     = errors.New("reference to unknown module")
	ErrUnknownIdent      = errors.New("reference to unknown identifier")
	ErrModuleCycle       = errors.New("cyclic module dependencies")
	ErrEntryModule       = errors.New("entry module not found")
	ErrEntryPointMissing = errors.New("entry module has no main declaration")
)

// ParseError reports malformed source with its origin and position. Origin
// is empty for stdin-derived or synthetic source.
type ParseError struct {
	Origin string
	Line   int
	Col    int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Origin == "" {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("parse error at %s:%d:%d: %s", e.Origin, e.Line, e.Col, e.Msg)
}
