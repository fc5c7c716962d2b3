package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/thesyncbridge/apiserver/internal/mission"
	"github.com/thesyncbridge/apiserver/internal/store"
	"github.com/thesyncbridge/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength     = 6
	maxAllocationAttempts = 5
	registryLimit         = 1000
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// GuardianRepository defines persistence operations for guardians.
type GuardianRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, guardian types.Guardian) (types.Guardian, error)
	GetByEmail(ctx context.Context, email string) (types.Guardian, error)
	GetByScrollID(ctx context.Context, scrollID string) (types.Guardian, error)
	List(ctx context.Context, limit int) ([]types.Guardian, error)
}

// GuardianOptions configures registration behaviour.
type GuardianOptions struct {
	ScrollPrefix string
	// OpenRegistration returns the existing guardian for a repeated email
	// instead of rejecting it, and makes the password optional.
	OpenRegistration bool
	Certificates     *CertificateIssuer
}

// GuardianService encapsulates guardian registration and lookup use-cases.
type GuardianService struct {
	repo   GuardianRepository
	events EventPublisher
	opts   GuardianOptions
}

func NewGuardianService(repo GuardianRepository, events EventPublisher, opts GuardianOptions) *GuardianService {
	if opts.ScrollPrefix == "" {
		opts.ScrollPrefix = "SB"
	}
	return &GuardianService{
		repo:   repo,
		events: publisherOrNoop(events),
		opts:   opts,
	}
}

// Register creates a guardian for email. The boolean result is false when an
// existing guardian was returned unchanged.
func (s *GuardianService) Register(ctx context.Context, email, password string) (types.Guardian, bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return types.Guardian{}, false, err
	}

	if password != "" || !s.opts.OpenRegistration {
		if utf8.RuneCountInString(password) < minPasswordLength {
			return types.Guardian{}, false, invalid("password", "password must be at least 6 characters")
		}
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return s.existingRegistration(existing)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.Guardian{}, false, err
	}

	var hash string
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return types.Guardian{}, false, err
		}
		hash = string(hashed)
	}

	// The count and the insert are not atomic; a unique scroll id index turns
	// a lost race into ErrDuplicateScrollID and the fresh count of the next
	// attempt already includes the winner.
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return types.Guardian{}, false, err
		}

		created, err := s.repo.Create(ctx, types.Guardian{
			Email:        email,
			ScrollID:     mission.NextScrollID(s.opts.ScrollPrefix, count),
			PasswordHash: hash,
			IsCertified:  true,
		})
		switch {
		case err == nil:
			s.events.Publish(ctx, EventGuardianRegistered, created)
			return created, true, nil
		case errors.Is(err, store.ErrDuplicateScrollID):
			continue
		case errors.Is(err, store.ErrDuplicateEmail):
			existing, getErr := s.repo.GetByEmail(ctx, email)
			if getErr != nil {
				return types.Guardian{}, false, getErr
			}
			return s.existingRegistration(existing)
		default:
			return types.Guardian{}, false, err
		}
	}

	return types.Guardian{}, false, ErrScrollAllocation
}

func (s *GuardianService) existingRegistration(existing types.Guardian) (types.Guardian, bool, error) {
	if s.opts.OpenRegistration {
		return existing, false, nil
	}
	return types.Guardian{}, false, ErrEmailTaken
}

// Login verifies a guardian's password. Unknown scroll ids and wrong
// passwords are indistinguishable to the caller.
func (s *GuardianService) Login(ctx context.Context, scrollID, password string) (types.Guardian, error) {
	guardian, err := s.repo.GetByScrollID(ctx, normalizeScrollID(scrollID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Guardian{}, ErrInvalidCredentials
		}
		return types.Guardian{}, err
	}

	if guardian.PasswordHash == "" {
		return types.Guardian{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(guardian.PasswordHash), []byte(password)); err != nil {
		return types.Guardian{}, ErrInvalidCredentials
	}
	return guardian, nil
}

func (s *GuardianService) LookupByEmail(ctx context.Context, email string) (types.Guardian, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return types.Guardian{}, err
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *GuardianService) GetByScrollID(ctx context.Context, scrollID string) (types.Guardian, error) {
	return s.repo.GetByScrollID(ctx, normalizeScrollID(scrollID))
}

// Registry lists guardians in registration order.
func (s *GuardianService) Registry(ctx context.Context) ([]types.Guardian, error) {
	return s.repo.List(ctx, registryLimit)
}

func (s *GuardianService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Certificate builds the guardianship certificate for scrollID.
func (s *GuardianService) Certificate(ctx context.Context, scrollID string) (types.Certificate, error) {
	guardian, err := s.GetByScrollID(ctx, scrollID)
	if err != nil {
		return types.Certificate{}, err
	}
	return s.opts.Certificates.Issue(guardian)
}

// VerifyCertificate resolves a certificate verification token back to its certificate.
func (s *GuardianService) VerifyCertificate(ctx context.Context, token string) (types.Certificate, error) {
	scrollID, err := s.opts.Certificates.Verify(token)
	if err != nil {
		return types.Certificate{}, err
	}
	return s.Certificate(ctx, scrollID)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalid("email", "email is required")
	}
	if err := validate.Var(email, "email,max=254"); err != nil {
		return "", invalid("email", "invalid email address")
	}
	return email, nil
}

func normalizeScrollID(scrollID string) string {
	return strings.ToUpper(strings.TrimSpace(scrollID))
}
