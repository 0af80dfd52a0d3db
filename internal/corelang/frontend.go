// Package corelang is the Lumen compiler core: lexing, parsing,
// optimization, and JavaScript code generation. The driver treats it as an
// opaque collaborator behind two operations, ParseModules and Compile.
package corelang

import (
	"github.com/lumenlang/lumenc/internal/compiler/input"
	"github.com/lumenlang/lumenc/internal/compiler/options"
)

// Compiler is the production frontend handed to the driver.
type Compiler struct{}

// New returns the compiler frontend.
func New() *Compiler {
	return &Compiler{}
}

// ParseModules parses every source unit in order.
func (c *Compiler) ParseModules(units []input.SourceUnit) ([]*Module, error) {
	return ParseModules(units)
}

// Compile generates code and the externs descriptor for the parsed modules.
func (c *Compiler) Compile(opts options.Options, modules []*Module, prefixLines []string) (Artifacts, error) {
	return Compile(opts, modules, prefixLines)
}
