// Package viz defines the contract between instrumented structures and the
// consumers of their traces: the Visualizable interface every structure
// implements, the renderable projection of a structure's contents, and the
// error taxonomy operations report through.
package viz

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// Visualizable is one instrumented structure. Execute applies a single
// operation and returns the ordered steps it produced; a non-empty step
// slice together with a nil error is the normal outcome even for no-ops
// such as inserting a duplicate. Errors are reserved for requests the
// structure cannot express at all.
type Visualizable interface {
	// Execute applies op and returns the steps describing what happened.
	Execute(op step.Operation) ([]step.Step, error)
	// Render projects the current contents into a drawable state.
	Render() RenderState
	// Size reports the number of stored elements.
	Size() int
	// Clear removes all elements and resets internal storage.
	Clear()
}

// Errors reported by structure operations. Callers match them with
// errors.Is; structures add context by wrapping with fmt.Errorf and %w.
var (
	// ErrNotFound reports a lookup or removal target that is absent when
	// the operation cannot express the miss as an in-trace outcome.
	ErrNotFound = errors.New("value not found")
	// ErrIndexOutOfBounds reports a positional argument outside the
	// structure's current extent.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrEmptyStructure reports a removal from an empty structure where
	// the structure treats that as a hard error rather than a traced no-op.
	ErrEmptyStructure = errors.New("structure is empty")
	// ErrFull reports an addition to a structure that is at capacity.
	ErrFull = errors.New("structure is full")
	// ErrInvalidState reports a detected internal corruption. A structure
	// that returns it makes no further guarantees until Clear is called.
	ErrInvalidState = errors.New("invalid structure state")
	// ErrVisualization reports a request the structure cannot express,
	// such as an operation kind it does not support.
	ErrVisualization = errors.New("visualization not supported")
)

// IndexOutOfBounds wraps ErrIndexOutOfBounds with the offending index and
// the structure's size at the time of the request.
func IndexOutOfBounds(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfBounds, index, size)
}

// Full wraps ErrFull with the structure's capacity.
func Full(capacity int) error {
	return fmt.Errorf("%w: capacity %d", ErrFull, capacity)
}

// InvalidState wraps ErrInvalidState with the detected corruption.
func InvalidState(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, reason)
}

// Unsupported wraps ErrVisualization for an operation kind the structure
// does not implement.
func Unsupported(structure, operation string) error {
	return fmt.Errorf("%w: %s does not support %s", ErrVisualization, structure, operation)
}
