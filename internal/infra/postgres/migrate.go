package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id    BIGINT PRIMARY KEY,
		xp         INTEGER NOT NULL DEFAULT 0,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS user_progress_xp_idx ON user_progress (xp DESC, user_id)`,
}

// Migrate creates the tables the bot needs. It is safe to run on every start.
func Migrate(ctx context.Context, tr *Transactor) error {
	return tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}
