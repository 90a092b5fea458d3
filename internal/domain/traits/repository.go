package traits

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound = errors.New("trait not found")
)

// Repository tiene la misma forma que groups.Repository.
type Repository interface {
	GetOrCreate(ctx context.Context, name string) (t Trait, created bool, err error)
	FindByName(ctx context.Context, name string) (Trait, error)
	FindFirstContaining(ctx context.Context, fragment string) (Trait, error)
	GetByID(ctx context.Context, id string) (Trait, error)
}
