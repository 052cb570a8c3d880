package rules

import "errors"

var (
	// ErrLimitViolation indicates that the resulting roster breaches one or more ceilings.
	ErrLimitViolation = errors.New("roster limit violation")
	// ErrIneligibleSlot indicates that the player cannot occupy the requested slot.
	ErrIneligibleSlot = errors.New("slot is not eligible for player")
	// ErrPlayerLocked indicates that the player is part of an unresolved trade.
	ErrPlayerLocked = errors.New("player is locked by a pending trade")
	// ErrStaleState indicates that the roster changed after it was checked.
	ErrStaleState = errors.New("roster changed since it was checked")
	// ErrNotFound indicates that a referenced player, roster entry or claim does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest indicates structurally malformed input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMoveLocked indicates that the lineup lock blocks moving this player.
	ErrMoveLocked = errors.New("lineup is locked for this player")
)

// RejectionError is a typed rejection returned by the transaction processors.
type RejectionError struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Reason is a human-readable explanation.
	Reason string
	// Violations lists breached ceilings for limit and stale-state rejections.
	Violations []Violation
}

// Error implements error.
func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Reason
}

// Unwrap exposes the kind to errors.Is.
func (e *RejectionError) Unwrap() error {
	return e.Kind
}

// Reject builds a rejection of the given kind.
func Reject(kind error, reason string) error {
	return &RejectionError{Kind: kind, Reason: reason}
}

// RejectViolations builds a limit rejection carrying the violation list.
func RejectViolations(violations []Violation) error {
	return &RejectionError{
		Kind:       ErrLimitViolation,
		Reason:     JoinViolations(violations),
		Violations: violations,
	}
}

// RejectStale builds a stale-state rejection carrying what the live roster now violates.
func RejectStale(reason string, violations []Violation) error {
	return &RejectionError{Kind: ErrStaleState, Reason: reason, Violations: violations}
}

// ViolationsOf extracts the violation list from a rejection, if any.
func ViolationsOf(err error) []Violation {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return rejection.Violations
	}
	return nil
}
