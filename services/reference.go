package services

import (
	"strings"

	"github.com/google/uuid"
)

// newReference builds an order reference like "WD-6F9619FF8B86D011B42D".
func newReference(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + raw[:20]
}
