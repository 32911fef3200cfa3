package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/infra/postgres"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
)

// ProgressRepository stores each user's record as one JSONB document.
// XP is duplicated into its own column for leaderboard queries.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a repository on top of a pool or a transaction.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get loads the user's record.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	query := `SELECT data FROM user_progress WHERE user_id = $1`

	var data []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return decodeProgress(userID, data)
}

// Put inserts or replaces the user's record.
func (r *ProgressRepository) Put(ctx context.Context, p *entities.UserProgress) error {
	query := `
		INSERT INTO user_progress (user_id, xp, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, p.UserID, p.XP, data); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}

	return nil
}

// Delete removes the user's record and reports whether a row existed.
func (r *ProgressRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_progress WHERE user_id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("delete progress: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// List returns every record ordered by user ID.
func (r *ProgressRepository) List(ctx context.Context) ([]*entities.UserProgress, error) {
	return r.query(ctx, `SELECT user_id, data FROM user_progress ORDER BY user_id`)
}

// TopByXP returns the limit records with the most XP, ties broken by user ID.
func (r *ProgressRepository) TopByXP(ctx context.Context, limit int) ([]*entities.UserProgress, error) {
	return r.query(ctx, `
		SELECT user_id, data
		FROM user_progress
		ORDER BY xp DESC, user_id
		LIMIT $1
	`, limit)
}

func (r *ProgressRepository) query(ctx context.Context, query string, args ...any) ([]*entities.UserProgress, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []*entities.UserProgress
	for rows.Next() {
		var (
			userID int64
			data   []byte
		)
		if err = rows.Scan(&userID, &data); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}

		p, err := decodeProgress(userID, data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}

	return out, nil
}

func decodeProgress(userID int64, data []byte) (*entities.UserProgress, error) {
	var p entities.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal progress %d: %w", userID, err)
	}
	p.UserID = userID
	return &p, nil
}
