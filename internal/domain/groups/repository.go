package groups

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound = errors.New("group not found")
)

type Repository interface {
	// GetOrCreate busca por Key(scientificName) y, si no existe, lo crea de forma atómica.
	// created indica si el registro fue insertado en esta llamada.
	GetOrCreate(ctx context.Context, scientificName string) (g Group, created bool, err error)

	// FindByName busca por igualdad exacta de Key.
	FindByName(ctx context.Context, scientificName string) (Group, error)

	// FindFirstContaining devuelve el group más antiguo cuya key contiene Key(fragment).
	FindFirstContaining(ctx context.Context, fragment string) (Group, error)

	GetByID(ctx context.Context, id string) (Group, error)
}
