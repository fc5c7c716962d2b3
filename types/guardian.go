package types

import "time"

// Guardian represents a registered mission member.
// It carries the sequential scroll id assigned at registration.
type Guardian struct {
	// ID is the unique identifier of the guardian (UUID v4).
	ID string `json:"id" bson:"_id" db:"id"`

	// Email is the lower-cased address the guardian registered with.
	Email string `json:"email" bson:"email" db:"email"`

	// ScrollID is the public sequential identifier, e.g. "SB-0042".
	ScrollID string `json:"scroll_id" bson:"scroll_id" db:"scroll_id"`

	// PasswordHash stores the bcrypt hash of the guardian's password.
	// It is empty for guardians registered without a credential and is
	// never exposed in API responses.
	PasswordHash string `json:"-" bson:"password_hash,omitempty" db:"password_hash"`

	// RegisteredAt is the UTC timestamp of the registration.
	RegisteredAt time.Time `json:"registered_at" bson:"registered_at" db:"registered_at"`

	// IsCertified reports whether the guardian holds a certificate.
	IsCertified bool `json:"is_certified" bson:"is_certified" db:"is_certified"`
}

// Certificate is the printable guardianship record for a guardian.
type Certificate struct {
	ScrollID          string    `json:"scroll_id"`
	RegisteredAt      time.Time `json:"registered_at"`
	IsCertified       bool      `json:"is_certified"`
	CertificateTitle  string    `json:"certificate_title"`
	Organization      string    `json:"organization"`
	Mission           string    `json:"mission"`
	VerificationToken string    `json:"verification_token,omitempty"`
}
