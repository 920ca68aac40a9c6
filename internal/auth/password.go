package auth

import (
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/utaskhq/utask/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateEmail rejects malformed addresses.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return domain.E(domain.ErrValidation, "invalid email format")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters
// with at least one letter and one digit.
func ValidatePassword(password string) error {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if len([]rune(password)) < 8 || !hasLetter || !hasDigit {
		return domain.E(domain.ErrValidation, "password must have at least 8 characters, including letters and numbers")
	}
	return nil
}
