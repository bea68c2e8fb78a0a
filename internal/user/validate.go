package user

import (
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
)

const minPasswordLength = 10

const bcryptCost = 10

// ValidateUsername accepts any non-empty username. Deliberately permissive.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errs.InvalidInput("Username must not be empty")
	}
	return nil
}

// ValidateEmail checks that the email is a plain RFC-shaped address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.InvalidInput(`Email is of an invalid format (Proper format: "user@example.com")`)
	}
	return nil
}

// ValidatePassword requires at least minPasswordLength characters with at
// least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errs.InvalidInput("Password must be at least %d characters", minPasswordLength)
	}

	hasLetter, hasDigit := false, false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if hasLetter && hasDigit {
			break
		}
	}

	switch {
	case !hasLetter && !hasDigit:
		return errs.InvalidInput("Password must have alphabetic and numerical characters")
	case !hasLetter:
		return errs.InvalidInput("Password must have at least one alphabetic character")
	case !hasDigit:
		return errs.InvalidInput("Password must have at least one numerical character")
	}

	return nil
}

func validateCredentials(username, email, password string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword compares a plaintext password with the stored hash.
func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
