// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL schema with golang-migrate at startup.
//
// Migrations are read from an [fs.FS]: the set embedded in the binary by
// default, or a directory on disk when MIGRATION_PATH is configured.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/taskly/data/migrations"
)

// pgx5Scheme is the URL scheme registered by the golang-migrate pgx/v5 driver.
const pgx5Scheme = "pgx5://"

// Source picks the migration set: the embedded files when path is empty,
// otherwise the directory at path.
func Source(path string) fs.FS {
	if strings.TrimSpace(path) == "" {
		return migrations.FS
	}
	return os.DirFS(path)
}

/*
RunUp brings the schema to the latest version found in files.

Parameters:
  - dsn: postgres:// URL of the target database
  - files: migration set, see [Source]
  - logger: receives progress and golang-migrate's own output

Returns:
  - error: when the database is dirty or a migration fails; an up-to-date
    schema is not an error
*/
func RunUp(dsn string, files fs.FS, logger *slog.Logger) error {
	sourceDriver, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("migration_source_open_failed: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", sourceDriver, toPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration_init_failed: %w", err)
	}
	defer closeMigrator(migrator, logger)

	migrator.Log = &slogAdapter{logger: logger, verbose: logger.Enabled(context.Background(), slog.LevelDebug)}

	// ── 1. Current State ──────────────────────────────────────────────────
	fromVersion, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fromVersion = 0
	case err != nil:
		return fmt.Errorf("migration_version_failed: %w", err)
	case dirty:
		return fmt.Errorf("migration_dirty_state: version %d needs manual repair", fromVersion)
	}

	// ── 2. Apply ──────────────────────────────────────────────────────────
	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(fromVersion)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration_up_failed: %w", err)
	}

	toVersion, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(fromVersion)),
		slog.Uint64("to_version", uint64(toVersion)),
	)
	return nil
}

func closeMigrator(migrator *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := migrator.Close()
	if err := errors.Join(sourceErr, databaseErr); err != nil {
		logger.Error("migration_close_failed", slog.Any("error", err))
	}
}

// toPgx5DSN swaps the postgres scheme for the one golang-migrate's pgx/v5 driver registers.
func toPgx5DSN(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, scheme); found {
			return pgx5Scheme + rest
		}
	}
	return dsn
}

// slogAdapter implements migrate.Logger.
type slogAdapter struct {
	logger  *slog.Logger
	verbose bool
}

func (adapter *slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter *slogAdapter) Verbose() bool {
	return adapter.verbose
}
