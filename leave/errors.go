/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All leave failures in one place. Callers distinguish the three
  classes with errors.Is:

  1. ErrRejected          - candidate failed a policy rule (not a fault)
  2. ErrInvalidTransition - status change on a non-PENDING request
  3. ErrNotFound          - unknown request id

  Rejections carry the violated rule's human-readable reason; the
  consuming layer surfaces it verbatim and never retries.
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRejected is returned when a candidate violates a policy rule.
	ErrRejected = errors.New("leave request rejected")

	// ErrInvalidTransition is returned when a lifecycle transition is
	// attempted on a request that is not PENDING. The request is left
	// untouched.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound is returned when a request id is unknown.
	ErrNotFound = errors.New("leave request not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RejectedError names the violated rule and its reason text.
type RejectedError struct {
	Rule   string // machine-readable rule id, e.g. "annual_notice"
	Reason string // human-readable reason, surfaced verbatim
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (%s): %s", e.Rule, e.Reason)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

// InvalidTransitionError records which state blocked the transition.
type InvalidTransitionError struct {
	ID   string
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("request %s: cannot transition %s -> %s", e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRejected reports whether err is a policy rejection.
func IsRejected(err error) bool { return errors.Is(err, ErrRejected) }

// IsNotFound reports whether err indicates a missing request.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
