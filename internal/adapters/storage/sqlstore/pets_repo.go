package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pets-api/internal/domain/groups"
	"pets-api/internal/domain/pets"
	"pets-api/internal/domain/traits"

	"github.com/cockroachdb/errors"
)

type PetsRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewPetsRepo(db *sql.DB, d Dialect) *PetsRepo {
	return &PetsRepo{db: db, dialect: d}
}

const petColumns = `
	p.id, p.name, p.age, p.weight, p.sex,
	p.created_at, p.updated_at,
	g.id, g.scientific_name, g.created_at
`

// Create inserta el pet y sus asociaciones en una sola transacción.
func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pets (
				id, name, age, weight, sex,
				group_id,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			p.ID,
			p.Name,
			p.Age,
			p.Weight,
			string(p.Sex),
			p.Group.ID,
			p.CreatedAt.UTC(),
			p.UpdatedAt.UTC(),
		)
		if err != nil {
			return errors.Wrap(err, "insert pet")
		}
		return insertTraits(ctx, tx, p.ID, p.Traits)
	})
}

// Update reescribe los escalares y el group, y reemplaza el set de traits completo.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE pets
			SET name = $2, age = $3, weight = $4, sex = $5,
				group_id = $6, updated_at = $7
			WHERE id = $1
		`,
			p.ID,
			p.Name,
			p.Age,
			p.Weight,
			string(p.Sex),
			p.Group.ID,
			p.UpdatedAt.UTC(),
		)
		if err != nil {
			return errors.Wrap(err, "update pet")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return pets.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM pet_traits WHERE pet_id = $1`, p.ID); err != nil {
			return errors.Wrap(err, "clear pet traits")
		}
		return insertTraits(ctx, tx, p.ID, p.Traits)
	})
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets p
		JOIN pet_groups g ON g.id = p.group_id
		WHERE p.id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	items := []pets.Pet{p}
	if err := r.loadTraits(ctx, items); err != nil {
		return pets.Pet{}, err
	}
	return items[0], nil
}

// Delete quita las asociaciones y el pet. Groups y traits quedan.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.ErrNotFound
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pet_traits WHERE pet_id = $1`, id); err != nil {
			return errors.Wrap(err, "delete pet traits")
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
		if err != nil {
			return errors.Wrap(err, "delete pet")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return pets.ErrNotFound
		}
		return nil
	})
}

// List filtra por key del group y/o de un trait (AND), ordena por alta y pagina.
func (r *PetsRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, int, error) {
	where, args := listWhere(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM pets p
		JOIN pet_groups g ON g.id = p.group_id
	`+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count pets")
	}
	if total == 0 {
		return []pets.Pet{}, 0, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + petColumns + `
		FROM pets p
		JOIN pet_groups g ON g.id = p.group_id
	`)
	sb.WriteString(where)
	sb.WriteString(" ORDER BY p.created_at ASC, p.id ASC")

	argN := len(args) + 1
	switch {
	case filter.Limit > 0:
		sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argN, argN+1))
		args = append(args, filter.Limit, filter.Offset)
	case filter.Offset > 0:
		sb.WriteString(fmt.Sprintf(" LIMIT %s OFFSET $%d", r.dialect.noLimit(), argN))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list pets")
	}

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			_ = rows.Close()
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, 0, errors.Wrap(err, "iterate pets")
	}
	// Se cierra antes de la segunda consulta: con SQLite hay una sola conexión.
	_ = rows.Close()

	if err := r.loadTraits(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func listWhere(filter pets.ListFilter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if key := groups.Key(filter.ScientificName); key != "" {
		args = append(args, key)
		clauses = append(clauses, fmt.Sprintf("g.name_key = $%d", len(args)))
	}
	if key := traits.Key(filter.Trait); key != "" {
		args = append(args, key)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1
			FROM pet_traits pt
			JOIN traits t ON t.id = pt.trait_id
			WHERE pt.pet_id = p.id AND t.name_key = $%d
		)`, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// loadTraits hidrata los traits de todos los pets con una sola consulta, respetando position.
func (r *PetsRepo) loadTraits(ctx context.Context, items []pets.Pet) error {
	if len(items) == 0 {
		return nil
	}

	idx := make(map[string]int, len(items))
	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items))
	for i := range items {
		items[i].Traits = []traits.Trait{}
		idx[items[i].ID] = i
		args = append(args, items[i].ID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pt.pet_id, t.id, t.name, t.created_at
		FROM pet_traits pt
		JOIN traits t ON t.id = pt.trait_id
		WHERE pt.pet_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY pt.pet_id, pt.position
	`, args...)
	if err != nil {
		return errors.Wrap(err, "load pet traits")
	}
	defer rows.Close()

	for rows.Next() {
		var petID string
		var t traits.Trait
		if err := rows.Scan(&petID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return errors.Wrap(err, "scan pet trait")
		}
		if i, ok := idx[petID]; ok {
			items[i].Traits = append(items[i].Traits, t)
		}
	}
	return errors.Wrap(rows.Err(), "iterate pet traits")
}

func insertTraits(ctx context.Context, tx *sql.Tx, petID string, ts []traits.Trait) error {
	for i, t := range ts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pet_traits (pet_id, trait_id, position)
			VALUES ($1, $2, $3)
		`, petID, t.ID, i); err != nil {
			return errors.Wrapf(err, "attach trait %s", t.ID)
		}
	}
	return nil
}

func (r *PetsRepo) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var sex string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Weight,
		&sex,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Group.ID,
		&p.Group.ScientificName,
		&p.Group.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, err
		}
		return pets.Pet{}, errors.Wrap(err, "scan pet")
	}
	p.Sex = pets.Sex(sex)
	return p, nil
}
