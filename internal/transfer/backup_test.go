package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/word"
)

type memoryWordRepository struct {
	words []word.Word
}

func (r *memoryWordRepository) FindAll(ctx context.Context) ([]word.Word, error) {
	return r.words, nil
}

func (r *memoryWordRepository) FindByID(ctx context.Context, id string) (*word.Word, error) {
	for _, w := range r.words {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (r *memoryWordRepository) FindByText(ctx context.Context, text string) (*word.Word, error) {
	for _, w := range r.words {
		if w.Text == text {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (r *memoryWordRepository) Create(ctx context.Context, w *word.Word) error {
	for _, existing := range r.words {
		if existing.Text == w.Text {
			return word.ErrDuplicateText
		}
	}
	// Same timestamp behavior as the database repository.
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}
	r.words = append(r.words, *w)
	return nil
}

func (r *memoryWordRepository) Update(ctx context.Context, w *word.Word) error {
	for i := range r.words {
		if r.words[i].ID == w.ID {
			r.words[i] = *w
			return nil
		}
	}
	return word.ErrNotFound
}

func (r *memoryWordRepository) Delete(ctx context.Context, id string) error {
	for i := range r.words {
		if r.words[i].ID == id {
			r.words = append(r.words[:i], r.words[i+1:]...)
			return nil
		}
	}
	return word.ErrNotFound
}

type memoryReviewRepository struct {
	reviews []review.Review
}

func (r *memoryReviewRepository) FindAll(ctx context.Context) ([]review.Review, error) {
	return r.reviews, nil
}

func (r *memoryReviewRepository) FindByWord(ctx context.Context, wordID string) ([]review.Review, error) {
	var found []review.Review
	for _, rev := range r.reviews {
		if rev.WordID == wordID {
			found = append(found, rev)
		}
	}
	return found, nil
}

func (r *memoryReviewRepository) FindSince(ctx context.Context, since time.Time) ([]review.Review, error) {
	return r.reviews, nil
}

func (r *memoryReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	rev.ID = int64(len(r.reviews) + 1)
	r.reviews = append(r.reviews, *rev)
	return nil
}

func (r *memoryReviewRepository) DeleteByWord(ctx context.Context, wordID string) error {
	return nil
}

type memoryCardRepository struct {
	cards map[string]srs.Card
}

func newMemoryCardRepository() *memoryCardRepository {
	return &memoryCardRepository{cards: make(map[string]srs.Card)}
}

func (r *memoryCardRepository) FindAll(ctx context.Context) ([]srs.Card, error) {
	var cards []srs.Card
	for _, c := range r.cards {
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *memoryCardRepository) FindByWord(ctx context.Context, wordID string) (*srs.Card, error) {
	c, ok := r.cards[wordID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memoryCardRepository) Upsert(ctx context.Context, card *srs.Card) error {
	r.cards[card.WordID] = *card
	return nil
}

func (r *memoryCardRepository) DeleteByWord(ctx context.Context, wordID string) error {
	delete(r.cards, wordID)
	return nil
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	reviewedAt := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	addedAt := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	source := &memoryWordRepository{words: []word.Word{
		{ID: "w1", Text: "because", Hint: "The reason for something.", CreatedAt: addedAt, UpdatedAt: addedAt},
		{ID: "w2", Text: "friend", Hint: "Someone you like to play with.", CreatedAt: addedAt, UpdatedAt: addedAt},
	}}
	sourceReviews := &memoryReviewRepository{reviews: []review.Review{
		{ID: 1, WordID: "w1", ReviewedAt: reviewedAt, Quality: 5, Auto: true},
	}}
	sourceCards := newMemoryCardRepository()
	sourceCards.cards["w1"] = srs.Card{WordID: "w1", EasinessFactor: 2.6, IntervalDays: 6, Repetitions: 2, DueAt: reviewedAt.AddDate(0, 0, 6)}

	var buf bytes.Buffer
	exporter := NewExporter(source, sourceReviews, sourceCards)
	require.NoError(t, exporter.Export(ctx, &buf))

	var document Backup
	require.NoError(t, json.Unmarshal(buf.Bytes(), &document))
	assert.Equal(t, BackupVersion, document.Version)
	assert.Len(t, document.Words, 2)
	assert.Len(t, document.Reviews, 1)
	assert.Len(t, document.Cards, 1)

	target := &memoryWordRepository{}
	targetReviews := &memoryReviewRepository{}
	targetCards := newMemoryCardRepository()
	importer := NewImporter(target, targetReviews, targetCards)

	result, err := importer.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.WordsCreated)
	assert.Equal(t, 0, result.WordsSkipped)
	assert.Equal(t, 1, result.CardsCreated)
	require.Len(t, target.words, 2)
	assert.Len(t, targetReviews.reviews, 1)

	// Word timestamps survive the round trip instead of being re-stamped.
	for _, w := range target.words {
		assert.Equal(t, addedAt, w.CreatedAt)
		assert.Equal(t, addedAt, w.UpdatedAt)
	}
}

func TestImportSkipsExistingWords(t *testing.T) {
	ctx := context.Background()

	target := &memoryWordRepository{words: []word.Word{
		{ID: "w1", Text: "because"},
		{ID: "other", Text: "friend"},
	}}
	importer := NewImporter(target, &memoryReviewRepository{}, newMemoryCardRepository())

	document := Backup{
		Version: BackupVersion,
		Words: []word.Word{
			{ID: "w1", Text: "because"},        // same ID
			{ID: "w2", Text: "friend"},         // same text, different ID
			{ID: "w3", Text: "school"},         // new
			{ID: "", Text: "missing-id"},       // invalid
		},
		Cards: []srs.Card{
			{WordID: "w1", IntervalDays: 6}, // belongs to a skipped word
			{WordID: "w3", IntervalDays: 1},
		},
	}
	content, err := json.Marshal(document)
	require.NoError(t, err)

	result, err := importer.Import(ctx, bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 1, result.WordsCreated)
	assert.Equal(t, 3, result.WordsSkipped)
	assert.Equal(t, 1, result.CardsCreated)
	assert.Len(t, target.words, 3)
}

func TestImportRejectsBadDocuments(t *testing.T) {
	ctx := context.Background()
	importer := NewImporter(&memoryWordRepository{}, &memoryReviewRepository{}, newMemoryCardRepository())

	t.Run("not json", func(t *testing.T) {
		_, err := importer.Import(ctx, strings.NewReader("not json"))
		assert.True(t, errors.Is(err, ErrInvalidBackup))
	})

	t.Run("wrong version", func(t *testing.T) {
		_, err := importer.Import(ctx, strings.NewReader(`{"version": 99}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidBackup))
		assert.Contains(t, err.Error(), "unsupported backup version")
	})
}
