package output

import "errors"

var (
	// ErrCreateDir indicates a parent directory for an output artifact
	// could not be created.
	ErrCreateDir = errors.New("failed to create output directory")

	// ErrWriteCode indicates the generated code could not be written.
	ErrWriteCode = errors.New("failed to write generated code")

	// ErrWriteExterns indicates the externs descriptor could not be written.
	ErrWriteExterns = errors.New("failed to write externs file")
)
