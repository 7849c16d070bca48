// Package word provides the word domain model and repository.
package word

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrNotFound is returned when a word does not exist.
var ErrNotFound = errors.New("word not found")

// ErrDuplicateText is returned when a word with the same text already exists.
var ErrDuplicateText = errors.New("word already exists")

// Word is a spelling word with its hint sentence.
type Word struct {
	ID        string    `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	Hint      string    `db:"hint" json:"hint"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewID generates a nanoid for a new word.
func NewID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("gonanoid.New() > %w", err)
	}
	return id, nil
}

// Repository defines operations for managing words.
type Repository interface {
	FindAll(ctx context.Context) ([]Word, error)
	FindByID(ctx context.Context, id string) (*Word, error)
	FindByText(ctx context.Context, text string) (*Word, error)
	Create(ctx context.Context, word *Word) error
	Update(ctx context.Context, word *Word) error
	Delete(ctx context.Context, id string) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all words ordered by text.
func (r *DBRepository) FindAll(ctx context.Context) ([]Word, error) {
	var words []Word
	if err := r.db.SelectContext(ctx, &words, "SELECT * FROM words ORDER BY text"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(words) > %w", err)
	}
	return words, nil
}

// FindByID returns a word by ID, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id string) (*Word, error) {
	var w Word
	err := r.db.GetContext(ctx, &w, "SELECT * FROM words WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word) > %w", err)
	}
	return &w, nil
}

// FindByText returns a word by its text, or nil if not found. Lookup is
// case-insensitive since word texts are stored lowercased.
func (r *DBRepository) FindByText(ctx context.Context, text string) (*Word, error) {
	var w Word
	err := r.db.GetContext(ctx, &w, "SELECT * FROM words WHERE text = ?", strings.ToLower(strings.TrimSpace(text)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(word by text) > %w", err)
	}
	return &w, nil
}

// Create inserts a new word. Zero timestamps are filled with the current
// time; non-zero ones are kept so imported words retain their history.
func (r *DBRepository) Create(ctx context.Context, word *Word) error {
	now := time.Now().UTC()
	if word.CreatedAt.IsZero() {
		word.CreatedAt = now
	}
	if word.UpdatedAt.IsZero() {
		word.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO words (id, text, hint, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		word.ID, word.Text, word.Hint, word.CreatedAt, word.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateText, word.Text)
		}
		return fmt.Errorf("db.ExecContext(insert word) > %w", err)
	}
	return nil
}

// Update updates a word's text and hint.
func (r *DBRepository) Update(ctx context.Context, word *Word) error {
	word.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"UPDATE words SET text = ?, hint = ?, updated_at = ? WHERE id = ?",
		word.Text, word.Hint, word.UpdatedAt, word.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateText, word.Text)
		}
		return fmt.Errorf("db.ExecContext(update word) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, word.ID)
	}
	return nil
}

// Delete removes a word. Reviews and the scheduling card are deleted
// separately by the caller.
func (r *DBRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete word) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
