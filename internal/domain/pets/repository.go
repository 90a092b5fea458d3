package pets

import (
	"context"

	"pets-api/internal/domain/groups"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound = errors.New("pet not found")
)

type Repository interface {
	// Create persiste el pet con su group y sus traits en una sola transacción.
	Create(ctx context.Context, p Pet) error
	// Update guarda el estado completo: escalares, group y reemplazo total de traits.
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Delete(ctx context.Context, id string) error
	// List devuelve la página pedida y el total de pets que cumplen el filtro.
	List(ctx context.Context, filter ListFilter) ([]Pet, int, error)
}

// ListFilter: ScientificName y Trait son opcionales ("" = sin filtro) y se combinan con AND.
// La comparación es por igualdad de key (groups.Key / traits.Key).
type ListFilter struct {
	ScientificName string
	Trait          string

	Limit  int // 0 = sin límite
	Offset int
}

// Matches aplica el filtro a un pet ya hidratado (usado por el storage en memoria).
func (f ListFilter) Matches(p Pet) bool {
	if f.ScientificName != "" && groups.Key(p.Group.ScientificName) != groups.Key(f.ScientificName) {
		return false
	}
	if f.Trait != "" && !p.HasTrait(f.Trait) {
		return false
	}
	return true
}
