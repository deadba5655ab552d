package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderNumber returns the short human-facing order code: the first
// 8 characters of a random UUID, uppercased. Uniqueness is enforced by the
// orders table; callers retry on a duplicate.
func GenerateOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:8])
}
