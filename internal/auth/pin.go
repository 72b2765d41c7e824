package auth

import (
	"errors"
	"fmt"
	"strings"

	"kpi-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// PINVerifier compares a supplied PIN with what the user has stored.
type PINVerifier interface {
	// Stored reports whether the user has anything to compare against.
	Stored(u *models.User) bool
	Verify(u *models.User, pin string) bool
}

// PlainVerifier compares against the plaintext pin column.
// Comparison is exact: "0123" and "123" differ.
type PlainVerifier struct{}

func (PlainVerifier) Stored(u *models.User) bool { return u.PIN != "" }

func (PlainVerifier) Verify(u *models.User, pin string) bool {
	return string(u.PIN) == pin
}

// BcryptVerifier compares against pin_hash. pin_salt is not used.
type BcryptVerifier struct{}

func (BcryptVerifier) Stored(u *models.User) bool { return strings.TrimSpace(string(u.PINHash)) != "" }

func (BcryptVerifier) Verify(u *models.User, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(pin)) == nil
}

// HashPIN hashes a PIN for the pin_hash column.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var ErrUnknownPINMode = errors.New("unknown pin mode")

// NewVerifier returns the verifier for a PIN_MODE value.
func NewVerifier(mode string) (PINVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPINMode, mode)
	}
}
