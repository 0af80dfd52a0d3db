// Package input resolves the ordered sequence of source units a
// compilation run must see: explicit files, standard input, and the
// implicitly injected prelude.
package input

import (
	"fmt"
	"io"
	"os"

	"github.com/lumenlang/lumenc/internal/prelude"
)

// SourceUnit is one labeled piece of source text. Origin is empty for
// synthetic or stdin-derived text (the prelude is always synthetic);
// file-derived units carry their path. Ordering between units is
// significant and preserved.
type SourceUnit struct {
	Origin string
	Text   string
}

// Synthetic reports whether the unit has no file origin.
func (u SourceUnit) Synthetic() bool {
	return u.Origin == ""
}

// Spec names where a run's source text comes from: standard input or an
// ordered list of file paths.
type Spec struct {
	useStdin bool
	stdin    io.Reader
	files    []string
}

// FilesSpec builds a Spec reading the given paths in order.
func FilesSpec(paths ...string) Spec {
	return Spec{files: paths}
}

// StdinSpec builds a Spec reading all of r as a single source unit.
func StdinSpec(r io.Reader) Spec {
	if r == nil {
		r = os.Stdin
	}
	return Spec{useStdin: true, stdin: r}
}

// UseStdin reports whether the spec reads from standard input.
func (s Spec) UseStdin() bool {
	return s.useStdin
}

// Files returns the ordered file paths of a file-based spec.
func (s Spec) Files() []string {
	return s.files
}

// Resolve produces the ordered source units for the run.
//
// Stdin mode always yields exactly one unit and never injects the prelude,
// regardless of suppressPrelude; stdin compilations are standalone. File
// mode reads each path in order and, unless suppressPrelude is set,
// prepends the embedded prelude as a synthetic unit. The first read
// failure aborts resolution; no partial result is returned.
func Resolve(spec Spec, suppressPrelude bool) ([]SourceUnit, error) {
	if spec.useStdin {
		text, err := io.ReadAll(spec.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadStdin, err)
		}
		return []SourceUnit{{Text: string(text)}}, nil
	}

	if len(spec.files) == 0 {
		return nil, ErrNoInput
	}

	units := make([]SourceUnit, 0, len(spec.files)+1)
	if !suppressPrelude {
		units = append(units, SourceUnit{Text: prelude.Source()})
	}

	for _, path := range spec.files {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
		}
		units = append(units, SourceUnit{Origin: path, Text: string(text)})
	}

	return units, nil
}
