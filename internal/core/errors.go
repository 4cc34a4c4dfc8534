package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a null/empty image or an out-of-domain parameter.
	// It is raised before any kernel runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOperationFailed marks a kernel that could not complete. A render that
	// returns it has produced no image and committed nothing.
	ErrOperationFailed = errors.New("operation failed")

	// ErrNoMoreUndo is informational, like io.EOF: the image returned with it
	// is the unchanged base checkpoint and is valid for display.
	ErrNoMoreUndo = errors.New("no more undo steps available")
)

// OperationError identifies the operation whose kernel failed during a render.
type OperationError struct {
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrOperationFailed, e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Is makes every OperationError match ErrOperationFailed, whatever it wraps.
func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}
