// Package sqlite implementa el store de inventario embebido sobre modernc.org/sqlite
// (sin cgo). Útil para operación local sin red y para pruebas de integración.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open abre (o crea) la base en path. Una sola conexión: SQLite serializa las escrituras.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de la base: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return db, nil
}

// Migrate aplica las migraciones embebidas.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migraciones embebidas: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, sub)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, res := range results {
		log.Info().Int64("version", res.Source.Version).Dur("duration", res.Duration).Msg("migración aplicada")
	}
	return nil
}
