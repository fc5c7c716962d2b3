package store

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a guardian email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateScrollID is returned when a scroll id was allocated concurrently.
	ErrDuplicateScrollID = errors.New("scroll id already allocated")

	// ErrDuplicateProduct is returned when an active product type already exists.
	ErrDuplicateProduct = errors.New("product type already exists")
)

const uniqueViolation = "23505"

// violatedConstraint returns the name of the unique constraint err violated.
func violatedConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
