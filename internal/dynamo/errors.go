package dynamo

import "errors"

// Domain errors for plotting operations.
var (
	// ErrInvalidViewport indicates non-positive extents, spacing or step.
	ErrInvalidViewport = errors.New("dynamo: invalid viewport (extents, spacing and step must be positive)")

	// ErrInvalidBounds indicates a bounds rectangle with min >= max on an axis.
	ErrInvalidBounds = errors.New("dynamo: invalid bounds")

	// ErrStepLimit indicates a walk was cut short by an explicit step cap.
	ErrStepLimit = errors.New("dynamo: step limit reached before leaving bounds")
)

// WalkError wraps an error with the position where a walk stopped.
type WalkError struct {
	Step    int
	At      Point
	Wrapped error
}

func (e *WalkError) Error() string {
	return e.Wrapped.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Wrapped
}
