package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pets-api/internal/domain/groups"
	"pets-api/internal/platform/fold"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type GroupsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewGroupsRepo(db *sql.DB) *GroupsRepo {
	return &GroupsRepo{db: db, now: time.Now}
}

// GetOrCreate inserta contra el índice único de name_key; si otro request ganó la carrera
// el INSERT no devuelve filas y se lee el registro existente.
func (r *GroupsRepo) GetOrCreate(ctx context.Context, scientificName string) (groups.Group, bool, error) {
	name := strings.TrimSpace(scientificName)
	key := groups.Key(name)
	if key == "" {
		return groups.Group{}, false, errors.New("scientific name required")
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pet_groups (id, scientific_name, name_key, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name_key) DO NOTHING
		RETURNING id, scientific_name, created_at
	`, uuid.NewString(), name, key, r.now().UTC())

	var g groups.Group
	err := row.Scan(&g.ID, &g.ScientificName, &g.CreatedAt)
	switch {
	case err == nil:
		return g, true, nil
	case errors.Is(err, sql.ErrNoRows):
		existing, err := r.findByKey(ctx, key)
		if err != nil {
			return groups.Group{}, false, errors.Wrap(err, "load existing group")
		}
		return existing, false, nil
	default:
		return groups.Group{}, false, errors.Wrap(err, "insert group")
	}
}

func (r *GroupsRepo) FindByName(ctx context.Context, scientificName string) (groups.Group, error) {
	key := groups.Key(scientificName)
	if key == "" {
		return groups.Group{}, groups.ErrNotFound
	}
	return r.findByKey(ctx, key)
}

func (r *GroupsRepo) findByKey(ctx context.Context, key string) (groups.Group, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, scientific_name, created_at
		FROM pet_groups
		WHERE name_key = $1
	`, key))
}

// FindFirstContaining: el más antiguo gana (created_at, id).
func (r *GroupsRepo) FindFirstContaining(ctx context.Context, fragment string) (groups.Group, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, scientific_name, created_at
		FROM pet_groups
		WHERE name_key LIKE $1 ESCAPE '\'
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, "%"+fold.EscapeLike(groups.Key(fragment))+"%"))
}

func (r *GroupsRepo) GetByID(ctx context.Context, id string) (groups.Group, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return groups.Group{}, groups.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, scientific_name, created_at
		FROM pet_groups
		WHERE id = $1
	`, id))
}

func (r *GroupsRepo) scanOne(row *sql.Row) (groups.Group, error) {
	var g groups.Group
	if err := row.Scan(&g.ID, &g.ScientificName, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return groups.Group{}, groups.ErrNotFound
		}
		return groups.Group{}, errors.Wrap(err, "scan group")
	}
	return g, nil
}
