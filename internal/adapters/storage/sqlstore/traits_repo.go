package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pets-api/internal/domain/traits"
	"pets-api/internal/platform/fold"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type TraitsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewTraitsRepo(db *sql.DB) *TraitsRepo {
	return &TraitsRepo{db: db, now: time.Now}
}

// GetOrCreate inserta contra el índice único de name_key; si otro request ganó la carrera
// el INSERT no devuelve filas y se lee el registro existente.
func (r *TraitsRepo) GetOrCreate(ctx context.Context, name string) (traits.Trait, bool, error) {
	name = strings.TrimSpace(name)
	key := traits.Key(name)
	if key == "" {
		return traits.Trait{}, false, errors.New("trait name required")
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO traits (id, name, name_key, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name_key) DO NOTHING
		RETURNING id, name, created_at
	`, uuid.NewString(), name, key, r.now().UTC())

	var t traits.Trait
	err := row.Scan(&t.ID, &t.Name, &t.CreatedAt)
	switch {
	case err == nil:
		return t, true, nil
	case errors.Is(err, sql.ErrNoRows):
		existing, err := r.findByKey(ctx, key)
		if err != nil {
			return traits.Trait{}, false, errors.Wrap(err, "load existing trait")
		}
		return existing, false, nil
	default:
		return traits.Trait{}, false, errors.Wrap(err, "insert trait")
	}
}

func (r *TraitsRepo) FindByName(ctx context.Context, name string) (traits.Trait, error) {
	key := traits.Key(name)
	if key == "" {
		return traits.Trait{}, traits.ErrNotFound
	}
	return r.findByKey(ctx, key)
}

func (r *TraitsRepo) findByKey(ctx context.Context, key string) (traits.Trait, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM traits
		WHERE name_key = $1
	`, key))
}

// FindFirstContaining: el más antiguo gana (created_at, id).
func (r *TraitsRepo) FindFirstContaining(ctx context.Context, fragment string) (traits.Trait, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM traits
		WHERE name_key LIKE $1 ESCAPE '\'
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, "%"+fold.EscapeLike(traits.Key(fragment))+"%"))
}

func (r *TraitsRepo) GetByID(ctx context.Context, id string) (traits.Trait, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return traits.Trait{}, traits.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM traits
		WHERE id = $1
	`, id))
}

func (r *TraitsRepo) scanOne(row *sql.Row) (traits.Trait, error) {
	var t traits.Trait
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return traits.Trait{}, traits.ErrNotFound
		}
		return traits.Trait{}, errors.Wrap(err, "scan trait")
	}
	return t, nil
}
