package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thesyncbridge/apiserver/types"
)

const (
	CertificateTitle        = "Certificate of Guardianship"
	CertificateOrganization = "TheSyncBridge"
)

// CertificateIssuer renders guardianship certificates and signs their
// verification tokens. A nil issuer or an empty secret issues certificates
// without a token.
type CertificateIssuer struct {
	secret    []byte
	totalDays int
	now       func() time.Time
}

func NewCertificateIssuer(secret string, totalDays int) *CertificateIssuer {
	return &CertificateIssuer{
		secret:    []byte(secret),
		totalDays: totalDays,
		now:       time.Now,
	}
}

func (c *CertificateIssuer) Issue(guardian types.Guardian) (types.Certificate, error) {
	totalDays := 325
	if c != nil && c.totalDays > 0 {
		totalDays = c.totalDays
	}

	cert := types.Certificate{
		ScrollID:         guardian.ScrollID,
		RegisteredAt:     guardian.RegisteredAt,
		IsCertified:      guardian.IsCertified,
		CertificateTitle: CertificateTitle,
		Organization:     CertificateOrganization,
		Mission:          fmt.Sprintf("%d-Day Crossing", totalDays),
	}

	if c == nil || len(c.secret) == 0 {
		return cert, nil
	}

	claims := jwt.RegisteredClaims{
		Subject:  guardian.ScrollID,
		Issuer:   CertificateOrganization,
		IssuedAt: jwt.NewNumericDate(c.now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return types.Certificate{}, err
	}
	cert.VerificationToken = token
	return cert, nil
}

// Verify checks a verification token and returns the scroll id it was issued for.
func (c *CertificateIssuer) Verify(tokenString string) (string, error) {
	if c == nil || len(c.secret) == 0 {
		return "", ErrInvalidCertificate
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	}, jwt.WithIssuer(CertificateOrganization))
	if err != nil || !token.Valid {
		return "", ErrInvalidCertificate
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidCertificate
	}
	return claims.Subject, nil
}
