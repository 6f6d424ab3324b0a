package quiz

import (
	"strings"

	"github.com/google/uuid"
)

// idLength is long enough that collisions within a local bank are negligible.
const idLength = 12

// NewID returns a short opaque identifier for a newly created item.
// Ids only key UI lists, so they are not required to be globally unique.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
