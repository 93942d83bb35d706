// Package id generates identifiers for records the service creates.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

const PrefixPlan = "plan_"

// New returns a time-ordered UUIDv7 string, falling back to a random v4 if
// the clock source fails.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

// NewPlanID returns an identifier for a plan awaiting review.
func NewPlanID() string {
	return PrefixPlan + New()
}

// Validate reports whether s is a well-formed UUID.
func Validate(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	return nil
}
