package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"strings"

	"pets-api/internal/platform/logger"

	"github.com/cockroachdb/errors"
)

//go:embed schema/*.sql
var schemaFS embed.FS

func schema(d Dialect) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + string(d) + ".sql")
	if err != nil {
		return "", errors.Wrapf(err, "read schema for %s", d)
	}
	return string(b), nil
}

// Migrate crea las tablas e índices si no existen. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	ddl, err := schema(d)
	if err != nil {
		return err
	}

	stmts := splitStatements(ddl)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin migration")
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migrate: %s", firstLine(stmt))
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit migration")
	}

	log.Info("schema migrated", map[string]any{
		"dialect":    string(d),
		"statements": len(stmts),
	})
	return nil
}

func splitStatements(ddl string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(ddl, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
