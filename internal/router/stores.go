package router

import (
	"context"
	"database/sql"

	mem "pets-api/internal/adapters/storage/memory"
	"pets-api/internal/adapters/storage/sqlstore"
	"pets-api/internal/domain/groups"
	"pets-api/internal/domain/pets"
	"pets-api/internal/domain/traits"
	"pets-api/internal/platform/config"
	"pets-api/internal/platform/logger"

	"github.com/cockroachdb/errors"
)

// Stores agrupa los repositorios que usa el módulo de pets.
type Stores struct {
	Pets   pets.Repository
	Groups groups.Repository
	Traits traits.Repository
}

// NewStores elige el storage: SQL si hay DB, in-memory si no.
// Con DB y driver memory (o vacío) se asume Postgres.
func NewStores(db *sql.DB, driver config.Driver) Stores {
	if db == nil {
		return Stores{
			Pets:   mem.NewPetRepo(),
			Groups: mem.NewGroupRepo(),
			Traits: mem.NewTraitRepo(),
		}
	}

	d := sqlstore.Postgres
	if driver == config.DriverSQLite {
		d = sqlstore.SQLite
	}
	return Stores{
		Pets:   sqlstore.NewPetsRepo(db, d),
		Groups: sqlstore.NewGroupsRepo(db),
		Traits: sqlstore.NewTraitsRepo(db),
	}
}

// OpenDB abre la base configurada y aplica el schema si auto_migrate está activo.
// Con driver memory devuelve (nil, nil).
func OpenDB(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (*sql.DB, error) {
	if cfg.Driver == config.DriverMemory {
		return nil, nil
	}

	d, err := sqlstore.ParseDialect(string(cfg.Driver))
	if err != nil {
		return nil, err
	}

	db, err := sqlstore.Open(d, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, d, log); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "auto migrate")
		}
	}
	return db, nil
}
