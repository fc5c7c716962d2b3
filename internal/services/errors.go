package services

import "errors"

var (
	// ErrInvalidCredentials is returned for any failed guardian login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email twice in credentialed mode.
	ErrEmailTaken = errors.New("email already registered")

	// ErrScrollAllocation is returned when no free scroll id was found.
	ErrScrollAllocation = errors.New("could not allocate scroll id")

	// ErrForbidden is returned when a guardian acts on another guardian's data.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCertificate is returned for certificate tokens that fail verification.
	ErrInvalidCertificate = errors.New("invalid certificate token")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
