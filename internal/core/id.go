package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID creates a collision-resistant identifier with the provided prefix,
// e.g. "evt-6f3b1c9e-....". Uniqueness is the only contract callers may rely
// on; the format is not load-bearing.
func NewID(prefix string) string {
	normalized := strings.TrimSuffix(prefix, "-")
	if normalized == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s-%s", normalized, uuid.NewString())
}
