package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the embedded schema files in lexical order. Every statement is
// idempotent so running it on each boot is safe.
func Migrate(ctx context.Context, db PgxIface, log *zap.Logger) error {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}

		log.Info("Migration applied", zap.String("file", file))
	}

	return nil
}
