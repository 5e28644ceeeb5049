package security

import (
	"strings"
	"unicode"

	"github.com/matthewhartstonge/argon2"
)

// MinPasswordLength is the minimum password length accepted at registration
// and reset.
const MinPasswordLength = 8

// passwordSymbols is the punctuation set a password must draw at least one
// character from.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

var argonConfig = argon2.DefaultConfig()

// HashPassword produces an encoded argon2id hash of the plaintext.
func HashPassword(password string) (string, error) {
	encoded, err := argonConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether the candidate matches the stored encoded
// hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// ValidatePasswordStrength enforces the account password policy: at least
// MinPasswordLength characters containing an uppercase letter, a lowercase
// letter, a digit and a symbol.
func ValidatePasswordStrength(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}
