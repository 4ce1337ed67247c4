package task

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	todoerrors "github.com/abatilo/powertodo/internal/errors"
)

const (
	minIDLength  = 3
	maxIDLength  = 8
	nonceSize    = 16 // 128 bits of entropy
	hexChunkSize = 4  // Process 4 hex chars (16 bits) at a time for base36 conversion
)

// Scheme selects how task IDs are generated.
type Scheme string

const (
	SchemeShort Scheme = "short"
	SchemeUUID  Scheme = "uuid"
)

// ParseScheme converts a config value to a Scheme. Empty means SchemeShort.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case "", SchemeShort:
		return SchemeShort, nil
	case SchemeUUID:
		return SchemeUUID, nil
	default:
		return "", todoerrors.InvalidIDSchemeError{Value: s}
	}
}

// IDFunc produces an ID not reported by exists.
type IDFunc func(title string, createdAt time.Time, exists func(string) bool) string

// Generator returns the ID function for the scheme.
func (s Scheme) Generator() IDFunc {
	if s == SchemeUUID {
		return func(_ string, _ time.Time, exists func(string) bool) string {
			return GenerateUUID(exists)
		}
	}
	return GenerateID
}

// GenerateID creates a unique task ID using hash-based generation with adaptive length.
// It starts with minIDLength characters and grows up to maxIDLength to avoid collisions.
func GenerateID(title string, createdAt time.Time, existsFn func(string) bool) string {
	for {
		if id, ok := hashID(title, createdAt, existsFn); ok {
			return id
		}
		// Every prefix collided; draw a fresh nonce.
	}
}

func hashID(title string, createdAt time.Time, existsFn func(string) bool) (string, bool) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}

	// Create hash from title + timestamp + nonce
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte(createdAt.Format(time.RFC3339Nano)))
	h.Write(nonce)

	base36 := hexToBase36(hex.EncodeToString(h.Sum(nil)))

	// Try progressively longer prefixes until we find a unique one
	for length := minIDLength; length <= maxIDLength && length <= len(base36); length++ {
		candidate := base36[:length]
		if !existsFn(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// GenerateUUID returns a random UUID that exists does not report.
func GenerateUUID(existsFn func(string) bool) string {
	for {
		id := uuid.NewString()
		if !existsFn(id) {
			return id
		}
	}
}

// hexToBase36 converts a hex string to base36.
func hexToBase36(hexStr string) string {
	var result strings.Builder
	for i := 0; i < len(hexStr); i += hexChunkSize {
		end := min(i+hexChunkSize, len(hexStr))
		chunk := hexStr[i:end]
		val, _ := strconv.ParseUint(chunk, 16, 64)
		result.WriteString(strconv.FormatUint(val, 36))
	}
	return result.String()
}
