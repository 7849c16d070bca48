package srs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository defines operations for managing scheduling cards.
type Repository interface {
	FindAll(ctx context.Context) ([]Card, error)
	FindByWord(ctx context.Context, wordID string) (*Card, error)
	Upsert(ctx context.Context, card *Card) error
	DeleteByWord(ctx context.Context, wordID string) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all cards.
func (r *DBRepository) FindAll(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := r.db.SelectContext(ctx, &cards, "SELECT * FROM cards ORDER BY word_id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}
	return cards, nil
}

// FindByWord returns the card for a word, or nil if not found.
func (r *DBRepository) FindByWord(ctx context.Context, wordID string) (*Card, error) {
	var card Card
	err := r.db.GetContext(ctx, &card, "SELECT * FROM cards WHERE word_id = ?", wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(card) > %w", err)
	}
	return &card, nil
}

// Upsert inserts the card or replaces the existing one for the same word.
func (r *DBRepository) Upsert(ctx context.Context, card *Card) error {
	now := time.Now().UTC()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (word_id, easiness_factor, interval_days, repetitions, due_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (word_id) DO UPDATE SET
			easiness_factor = excluded.easiness_factor,
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			due_at = excluded.due_at,
			updated_at = excluded.updated_at`,
		card.WordID, card.EasinessFactor, card.IntervalDays, card.Repetitions,
		card.DueAt, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert card) > %w", err)
	}
	return nil
}

// DeleteByWord removes the card for a word.
func (r *DBRepository) DeleteByWord(ctx context.Context, wordID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cards WHERE word_id = ?", wordID); err != nil {
		return fmt.Errorf("db.ExecContext(delete card) > %w", err)
	}
	return nil
}
