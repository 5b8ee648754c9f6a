package gateway

import (
	"errors"
	"fmt"
)

// ErrGateway is the sentinel all gateway failures wrap. Callers that only
// care whether the backend call failed check this; callers that need the
// operation or entity unwrap to *Error.
var ErrGateway = errors.New("gateway: request failed")

// Error describes one failed gateway call. The backend's error bodies are
// not part of the contract, so only the status code is preserved.
type Error struct {
	// Op is the logical operation, e.g. "turn on light" or "list scenes".
	Op string

	// EntityID is the affected entity, when the operation targets one.
	EntityID string

	// Status is the HTTP status code, or 0 for transport failures.
	Status int

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.EntityID != "" && e.Status != 0:
		return fmt.Sprintf("gateway: %s (%s): status %d", e.Op, e.EntityID, e.Status)
	case e.EntityID != "":
		return fmt.Sprintf("gateway: %s (%s): %v", e.Op, e.EntityID, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("gateway: %s: status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrGateway
}

// Is lets errors.Is(err, ErrGateway) match any gateway failure.
func (e *Error) Is(target error) bool {
	return target == ErrGateway
}
