package traits

import (
	"time"

	"pets-api/internal/platform/fold"
)

const MaxNameLen = 20

// Trait es una característica con nombre (many-to-many con Pet).
type Trait struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func Key(name string) string {
	return fold.Key(name)
}
