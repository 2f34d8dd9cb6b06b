package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexiplay/internal/platform/postgres"
)

// runMigrations executes one goose command against the embedded migrations.
// Every log line of the run carries the same correlation ID.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	log := logger.With("correlation_id", uuid.New().String())
	log.Info("executing migrations", "command", command)
	return postgres.Migrate(ctx, db, command, log)
}
