package errors

import (
	"strings"
	"unicode"
)

// MaxIterations bounds the simulation budget accepted over the API and
// CLI. The solver itself accepts any count; the bound exists to keep a
// single request from monopolizing a worker (cost grows linearly with
// iterations on top of the quadratic pair passes).
const MaxIterations = 10000

// ValidateIterations validates a requested simulation iteration count.
// Zero is allowed: it returns the initial placement unmodified.
func ValidateIterations(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidIterations, "iterations cannot be negative")
	}
	if n > MaxIterations {
		return New(ErrCodeInvalidIterations, "iterations too large (max %d)", MaxIterations)
	}
	return nil
}

// ValidateLayoutID validates a stored-layout identifier for safety before
// it reaches a storage backend.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateLayoutID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLayoutID, "layout ID cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidLayoutID, "layout ID too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLayoutID, "layout ID contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidLayoutID, "layout ID contains invalid characters")
	}
	return nil
}
