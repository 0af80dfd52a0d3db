// Package prelude bundles the Lumen standard prelude source with the
// compiler binary.
package prelude

import _ "embed"

//go:embed prelude.lum
var source string

// ModuleName is the name of the module the prelude source declares.
const ModuleName = "Prelude"

// Source returns the embedded prelude source text.
func Source() string {
	return source
}
