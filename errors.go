package invest

import (
	"errors"
	"fmt"
)

// The two recoverable error kinds. Every failure returned by this package
// wraps one of them, so callers can classify with errors.Is and decide
// whether to skip, retry or surface the failure.
var (
	// ErrNotFound reports that a referenced investor, goal, transaction or
	// position does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAllowed reports an invariant violation: zero or negative
	// quantities or prices, currency mismatches, overdrawn sells, and the like.
	ErrNotAllowed = errors.New("not allowed")
)

// Specializations of ErrNotAllowed for the failures callers commonly branch on.
var (
	ErrCurrencyMismatch     = fmt.Errorf("%w: currency mismatch", ErrNotAllowed)
	ErrInsufficientQuantity = fmt.Errorf("%w: insufficient quantity", ErrNotAllowed)
)
