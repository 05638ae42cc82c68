package roomcode

import (
	"crypto/rand"
	"errors"
)

// Length of generated room codes.
const Length = 6

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxAttempts bounds uniqueness resampling. With 36^6 codes this
	// only trips if the caller's predicate is broken.
	maxAttempts = 100
)

var ErrExhausted = errors.New("unable to generate unique room code")

// Generate returns a random uppercase alphanumeric code.
// Uniqueness against live rooms is the caller's concern.
func Generate() string {
	b := make([]byte, Length)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand.Read does not fail on supported platforms
		panic(err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

// GenerateUnique resamples until isFree accepts a code or attempts run out.
func GenerateUnique(isFree func(code string) bool) (string, error) {
	for range maxAttempts {
		if code := Generate(); isFree(code) {
			return code, nil
		}
	}
	return "", ErrExhausted
}
