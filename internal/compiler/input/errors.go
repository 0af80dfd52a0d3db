package input

import "errors"

var (
	// ErrReadFile indicates a source file could not be read.
	ErrReadFile = errors.New("failed to read source file")

	// ErrReadStdin indicates standard input could not be read.
	ErrReadStdin = errors.New("failed to read standard input")

	// ErrNoInput indicates the spec names neither files nor stdin.
	ErrNoInput = errors.New("no input files")
)
