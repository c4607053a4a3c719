// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taskly/internal/platform/database/schema"
	"github.com/taibuivan/taskly/internal/platform/postgres"
)

// PostgresRecorder writes entries to audit.log, each in its own transaction.
type PostgresRecorder struct {
	pool postgres.TxStarter
}

// NewPostgresRecorder creates a new PostgresRecorder.
func NewPostgresRecorder(pool postgres.TxStarter) *PostgresRecorder {
	return &PostgresRecorder{pool: pool}
}

// Record implements [Recorder].
func (recorder *PostgresRecorder) Record(ctx context.Context, entry Entry) error {
	table := schema.AuditLog
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))`,
		table.Table,
		table.Action, table.Status, table.Message,
		table.ActorID, table.TodoID, table.TargetUserID, table.CreatedAt,
		table.RequestID,
	)

	err := postgres.WithTx(ctx, recorder.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			entry.Action, entry.Status, entry.Message,
			entry.ActorID, entry.TodoID, entry.TargetUserID, entry.CreatedAt,
			entry.RequestID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("postgres_audit_record_failed: %w", err)
	}

	return nil
}
