// Package sqlstore implementa los repositorios sobre database/sql.
//
// El mismo SQL corre en Postgres (driver pgx) y en SQLite (modernc.org/sqlite, sin cgo):
// ambos aceptan placeholders $N y INSERT ... ON CONFLICT DO NOTHING RETURNING.
package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	default:
		return "", errors.Newf("unsupported sql dialect %q", s)
	}
}

func (d Dialect) driverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// noLimit es el valor de LIMIT que significa "sin límite" en cada motor.
func (d Dialect) noLimit() string {
	if d == SQLite {
		return "-1"
	}
	return "ALL"
}

// Open abre el pool y verifica la conexión con un ping.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	if d == SQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", d)
	}

	if d == SQLite {
		// SQLite serializa escrituras: una sola conexión, sin reciclar (":memory:" vive en ella).
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s", d)
	}

	return db, nil
}

// sqliteDSN activa las foreign keys en cada conexión salvo que el DSN ya lo indique.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
