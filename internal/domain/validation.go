package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidIssuer       = errors.New("invalid issuer")
)

// Validation constants
const (
	MaxUserIDLength = 64
	MaxIssuerLength = 32
)

var (
	userIDRegex = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)
	issuerRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ValidateUserID validates the user identifier that seeds every identity hash.
// The separator "|" is rejected because it delimits the hash input.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user ID cannot be empty", ErrInvalidUserID)
	}

	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: user ID exceeds %d characters", ErrInvalidUserID, MaxUserIDLength)
	}

	if !userIDRegex.MatchString(userID) {
		return fmt.Errorf("%w: user ID contains forbidden characters", ErrInvalidUserID)
	}

	return nil
}

// ParseDocumentType parses an optional document type; "" means any.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case DocumentInvoice:
		return DocumentInvoice, nil
	case DocumentStatement:
		return DocumentStatement, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentType, s)
	}
}

// ValidateIssuer validates an optional issuer code; "" means any.
func ValidateIssuer(issuer string) error {
	if issuer == "" {
		return nil
	}

	if len(issuer) > MaxIssuerLength || !issuerRegex.MatchString(issuer) {
		return fmt.Errorf("%w: %q", ErrInvalidIssuer, issuer)
	}

	return nil
}
