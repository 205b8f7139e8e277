package booking

import "fmt"

// StatusError signals an illegal booking lifecycle transition.
type StatusError struct {
	Current   string
	Attempted string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot move booking from %q to %q", e.Current, e.Attempted)
}
