package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/hnscope/pkg/domain"
)

// FeedbackRepository keeps feedback records as json values of the kv table
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Save stores the record under key, replacing any previous one
func (r *FeedbackRepository) Save(ctx context.Context, key string, rec domain.FeedbackRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal feedback: %v", domain.ErrStorage, err)
	}

	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	err = withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, key, string(value))
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: save feedback %q: %v", domain.ErrStorage, key, err)
	}
	return nil
}

// Load returns the record stored under key, nil without error if there is none
func (r *FeedbackRepository) Load(ctx context.Context, key string) (*domain.FeedbackRecord, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load feedback %q: %v", domain.ErrStorage, key, err)
	}

	var rec domain.FeedbackRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return nil, fmt.Errorf("%w: decode feedback %q: %v", domain.ErrStorage, key, err)
	}
	return &rec, nil
}

// Clear removes the record stored under key, clearing a missing key is not an error
func (r *FeedbackRepository) Clear(ctx context.Context, key string) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: clear feedback %q: %v", domain.ErrStorage, key, err)
	}
	return nil
}
