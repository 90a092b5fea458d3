package groups

import (
	"time"

	"pets-api/internal/platform/fold"
)

// MaxScientificNameLen es el largo máximo de scientific_name.
const MaxScientificNameLen = 50

// Group es la agrupación taxonómica de una mascota (p.ej. "Canis lupus").
// Se identifica funcionalmente por Key(ScientificName); el casing guardado es el del primer alta.
type Group struct {
	ID             string
	ScientificName string
	CreatedAt      time.Time
}

// Key es la clave funcional (case-insensitive) usada para unicidad y búsquedas.
func Key(scientificName string) string {
	return fold.Key(scientificName)
}
