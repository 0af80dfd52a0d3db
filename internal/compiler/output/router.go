// Package output routes a successful compilation's artifacts to their
// destinations: generated code to a file or the standard output stream,
// the externs descriptor to a file or nowhere.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Router writes compilation artifacts. The console writer is injectable
// for tests; production code passes os.Stdout.
type Router struct {
	console io.Writer
}

// NewRouter returns a Router writing console output to w. A nil w
// defaults to os.Stdout.
func NewRouter(w io.Writer) *Router {
	if w == nil {
		w = os.Stdout
	}
	return &Router{console: w}
}

// Route writes the generated code and, when requested, the externs
// descriptor.
//
// An empty codePath sends code to the console writer. The externs
// descriptor is written only when externsPath is non-empty; otherwise it
// is silently discarded. Parent directories are created on demand. Writes
// are not transactional: if the code write succeeds and the externs write
// fails, the code file is left in place and the error is reported.
func (r *Router) Route(code, externs, codePath, externsPath string) error {
	if codePath == "" {
		if _, err := io.WriteString(r.console, code); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteCode, err)
		}
	} else {
		if err := writeArtifact(codePath, code); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteCode, codePath, err)
		}
	}

	if externsPath != "" {
		if err := writeArtifact(externsPath, externs); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteExterns, externsPath, err)
		}
	}

	return nil
}

// writeArtifact writes text to path, creating missing parent directories
// and fully overwriting any existing contents.
func writeArtifact(path, text string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCreateDir, dir, err)
		}
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
