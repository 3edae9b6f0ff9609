package roomcode

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Length of every public room code.
	Length = 6
)

var codePattern = regexp.MustCompile(`^[0-9A-Z]{6}$`)

// Generate returns a random room code drawn from the uppercase base-36
// alphabet. Uniqueness is not checked here; the caller retries on insert
// conflicts.
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate room code: %w", err)
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf), nil
}

// Normalize uppercases a user-supplied code. Lookup is case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether a normalized code has the expected shape.
func Valid(code string) bool {
	return codePattern.MatchString(code)
}
