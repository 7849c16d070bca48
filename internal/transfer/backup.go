// Package transfer handles import and export of the learner's data.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/word"
)

// BackupVersion identifies the backup document layout.
const BackupVersion = 1

// ErrInvalidBackup is returned when an uploaded document cannot be read as a
// backup of a supported version.
var ErrInvalidBackup = errors.New("invalid backup document")

// Backup is the full JSON snapshot of the main store.
type Backup struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Words      []word.Word     `json:"words"`
	Reviews    []review.Review `json:"reviews"`
	Cards      []srs.Card      `json:"cards"`
}

// ImportResult reports what an import did.
type ImportResult struct {
	WordsCreated int `json:"words_created"`
	WordsSkipped int `json:"words_skipped"`
	CardsCreated int `json:"cards_created"`
}

// Exporter reads the full store into a backup document.
type Exporter struct {
	words   word.Repository
	reviews review.Repository
	cards   srs.Repository
}

// NewExporter creates an Exporter.
func NewExporter(words word.Repository, reviews review.Repository, cards srs.Repository) *Exporter {
	return &Exporter{words: words, reviews: reviews, cards: cards}
}

// Export writes the full snapshot as JSON.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	backup, err := e.Snapshot(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("json.Encode(backup) > %w", err)
	}
	return nil
}

// Snapshot collects the backup document without serializing it.
func (e *Exporter) Snapshot(ctx context.Context) (*Backup, error) {
	words, err := e.words.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("words.FindAll() > %w", err)
	}
	reviews, err := e.reviews.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reviews.FindAll() > %w", err)
	}
	cards, err := e.cards.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cards.FindAll() > %w", err)
	}

	return &Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Words:      words,
		Reviews:    reviews,
		Cards:      cards,
	}, nil
}

// Importer merges a backup document into the store.
type Importer struct {
	words   word.Repository
	reviews review.Repository
	cards   srs.Repository
}

// NewImporter creates an Importer.
func NewImporter(words word.Repository, reviews review.Repository, cards srs.Repository) *Importer {
	return &Importer{words: words, reviews: reviews, cards: cards}
}

// Import reads a backup document and merges it. Words whose ID already
// exists are skipped, not overwritten; reviews and cards are only taken for
// words created by this import.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var backup Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("%w: json.Decode(backup) > %w", ErrInvalidBackup, err)
	}
	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("%w: unsupported backup version %d", ErrInvalidBackup, backup.Version)
	}

	return i.merge(ctx, &backup)
}

func (i *Importer) merge(ctx context.Context, backup *Backup) (*ImportResult, error) {
	result := &ImportResult{}
	created := make(map[string]bool, len(backup.Words))

	for _, w := range backup.Words {
		if w.ID == "" || w.Text == "" {
			result.WordsSkipped++
			continue
		}

		existing, err := i.words.FindByID(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("words.FindByID(%s) > %w", w.ID, err)
		}
		if existing != nil {
			result.WordsSkipped++
			continue
		}

		w := w
		if err := i.words.Create(ctx, &w); err != nil {
			if isDuplicateText(err) {
				result.WordsSkipped++
				continue
			}
			return nil, fmt.Errorf("words.Create(%s) > %w", w.Text, err)
		}
		created[w.ID] = true
		result.WordsCreated++
	}

	for _, r := range backup.Reviews {
		if !created[r.WordID] {
			continue
		}
		r := r
		r.ID = 0
		if err := i.reviews.Create(ctx, &r); err != nil {
			return nil, fmt.Errorf("reviews.Create() > %w", err)
		}
	}

	for _, c := range backup.Cards {
		if !created[c.WordID] {
			continue
		}
		c := c
		if err := i.cards.Upsert(ctx, &c); err != nil {
			return nil, fmt.Errorf("cards.Upsert(%s) > %w", c.WordID, err)
		}
		result.CardsCreated++
	}

	return result, nil
}

func isDuplicateText(err error) bool {
	return errors.Is(err, word.ErrDuplicateText)
}
