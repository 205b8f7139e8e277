package modification

import (
	"errors"
	"fmt"
)

// Sentinel guard failures surfaced to the handler layer.
var (
	ErrBookingNotActive        = errors.New("booking is not active")
	ErrNotBookingOwner         = errors.New("booking does not belong to this client")
	ErrActiveRequestExists     = errors.New("an active modification request already exists for this booking")
	ErrAdminNotesRequired      = errors.New("admin notes are required when rejecting a request")
	ErrUnknownModificationType = errors.New("unknown modification type")
)

// InvalidTransitionError signals an illegal state-machine transition attempt,
// identifying the current state and the attempted target.
type InvalidTransitionError struct {
	Current   string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid modification transition from %q to %q", e.Current, e.Attempted)
}

// AsInvalidTransition unwraps err into an InvalidTransitionError, if it is one.
func AsInvalidTransition(err error) (*InvalidTransitionError, bool) {
	var ite *InvalidTransitionError
	if errors.As(err, &ite) {
		return ite, true
	}
	return nil, false
}

// ConcurrencyConflictError signals that the optimistic guard on a transition
// failed because another actor already resolved the request.
type ConcurrencyConflictError struct {
	RequestID string
	Current   string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("modification request %s was already processed (current status %q)", e.RequestID, e.Current)
}

// AsConcurrencyConflict unwraps err into a ConcurrencyConflictError, if it is one.
func AsConcurrencyConflict(err error) (*ConcurrencyConflictError, bool) {
	var cce *ConcurrencyConflictError
	if errors.As(err, &cce) {
		return cce, true
	}
	return nil, false
}
