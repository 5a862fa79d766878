package fit

import (
	"github.com/google/uuid"
)

// RunID identifies one pipeline invocation in logs
type RunID string

// NewRunID creates a time-ordered run identifier (UUID v7, v4 fallback)
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// Short returns the trailing eight characters for compact log prefixes
func (id RunID) Short() string {
	s := string(id)
	if len(s) <= 8 {
		return s
	}
	return s[len(s)-8:]
}
