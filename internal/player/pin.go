package player

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var ErrWeakPIN = errors.New("PIN must be 4-12 digits")

// HashPIN validates and hashes a profile PIN.
func HashPIN(pin string) (string, error) {
	if len(pin) < 4 || len(pin) > 12 {
		return "", ErrWeakPIN
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return "", ErrWeakPIN
		}
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPIN reports whether pin matches the record. Records without a PIN
// accept anything.
func (r *Record) CheckPIN(pin string) bool {
	if r.PINHash == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(r.PINHash), []byte(pin)) == nil
}
