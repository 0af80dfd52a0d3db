package driver

import (
	"errors"
	"fmt"
)

// Stage identifies where in the pipeline a run failed.
type Stage string

const (
	StageInput   Stage = "input"
	StageParse   Stage = "parse"
	StageCompile Stage = "compile"
	StageOutput  Stage = "output"
)

// ErrRun is the base error for failed compilation runs.
var ErrRun = errors.New("compilation failed")

// StageError wraps a stage failure so callers can tell where the run
// stopped while still unwrapping the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Is makes every StageError match ErrRun.
func (e *StageError) Is(target error) bool {
	return target == ErrRun
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
