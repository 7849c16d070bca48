// Package review provides the review log domain model and repository.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Review is a single recorded study attempt for a word.
type Review struct {
	ID             int64     `db:"id" json:"id"`
	WordID         string    `db:"word_id" json:"word_id"`
	ReviewedAt     time.Time `db:"reviewed_at" json:"reviewed_at"`
	Quality        int       `db:"quality" json:"quality"`
	Auto           bool      `db:"auto" json:"auto"`
	ResponseTimeMs int64     `db:"response_time_ms" json:"response_time_ms"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Repository defines operations for managing reviews.
type Repository interface {
	FindAll(ctx context.Context) ([]Review, error)
	FindByWord(ctx context.Context, wordID string) ([]Review, error)
	FindSince(ctx context.Context, since time.Time) ([]Review, error)
	Create(ctx context.Context, review *Review) error
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

// FindAll returns all reviews ordered by review time.
func (r *DBRepository) FindAll(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := r.db.SelectContext(ctx, &reviews, "SELECT * FROM reviews ORDER BY reviewed_at"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(reviews) > %w", err)
	}
	return reviews, nil
}

// FindByWord returns all reviews for a word, newest first.
func (r *DBRepository) FindByWord(ctx context.Context, wordID string) ([]Review, error) {
	var reviews []Review
	if err := r.db.SelectContext(ctx, &reviews,
		"SELECT * FROM reviews WHERE word_id = ? ORDER BY reviewed_at DESC", wordID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(reviews by word) > %w", err)
	}
	return reviews, nil
}

// FindSince returns reviews at or after the given time, oldest first.
func (r *DBRepository) FindSince(ctx context.Context, since time.Time) ([]Review, error) {
	var reviews []Review
	if err := r.db.SelectContext(ctx, &reviews,
		"SELECT * FROM reviews WHERE reviewed_at >= ? ORDER BY reviewed_at", since); err != nil {
		return nil, fmt.Errorf("db.SelectContext(reviews since) > %w", err)
	}
	return reviews, nil
}

// Create inserts a new review.
func (r *DBRepository) Create(ctx context.Context, review *Review) error {
	review.CreatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (word_id, reviewed_at, quality, auto, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		review.WordID, review.ReviewedAt, review.Quality, review.Auto,
		review.ResponseTimeMs, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	review.ID = id
	return nil
}

// DeleteByWord removes all reviews for a word.
func (r *DBRepository) DeleteByWord(ctx context.Context, wordID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE word_id = ?", wordID); err != nil {
		return fmt.Errorf("db.ExecContext(delete reviews) > %w", err)
	}
	return nil
}
