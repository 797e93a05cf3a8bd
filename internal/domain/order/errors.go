package order

import (
	"errors"
	"fmt"
)

var (
	// ErrPricesChanged covers both an unknown product and a stale price,
	// the two are deliberately not distinguished to the client.
	ErrPricesChanged = errors.New("sorry, prices have changed")

	ErrOrderNotFound = errors.New("no such order")
)

// ValidationError reports a malformed order submission. The reason is
// safe to echo back to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + e.Reason
}

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
