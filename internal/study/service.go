// Package study composes words, reviews, and the scheduler into the
// practice loop.
package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/word"
)

// MaxQuality and MinQuality bound manual rating grades.
const (
	MinQuality = 0
	MaxQuality = 5
)

// ErrInvalidQuality is returned when a manual grade is outside the 0 to 5 range.
var ErrInvalidQuality = errors.New("invalid quality")

// Service runs the study loop over the three stores.
type Service struct {
	words   word.Repository
	reviews review.Repository
	cards   srs.Repository
	now     func() time.Time
}

// NewService creates a study service.
func NewService(words word.Repository, reviews review.Repository, cards srs.Repository) *Service {
	return &Service{
		words:   words,
		reviews: reviews,
		cards:   cards,
		now:     time.Now,
	}
}

// Item is a due card joined with its word.
type Item struct {
	Word word.Word `json:"word"`
	Card srs.Card  `json:"card"`
}

// AttemptResult is the auto-rating outcome for a typed attempt.
type AttemptResult struct {
	Outcome  Outcome   `json:"outcome"`
	Quality  int       `json:"quality"`
	Recorded bool      `json:"recorded"`
	Word     word.Word `json:"word"`
	Card     *srs.Card `json:"card,omitempty"`
}

// Next returns up to limit due items in presentation order. Words without a
// card yet are treated as due immediately.
func (s *Service) Next(ctx context.Context, limit int) ([]Item, error) {
	words, err := s.words.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("words.FindAll() > %w", err)
	}
	cards, err := s.cards.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cards.FindAll() > %w", err)
	}

	now := s.now()
	wordsByID := make(map[string]word.Word, len(words))
	for _, w := range words {
		wordsByID[w.ID] = w
	}

	haveCard := make(map[string]bool, len(cards))
	candidates := make([]srs.Card, 0, len(words))
	for _, c := range cards {
		// Skip cards whose word was deleted out from under them.
		if _, ok := wordsByID[c.WordID]; !ok {
			continue
		}
		haveCard[c.WordID] = true
		candidates = append(candidates, c)
	}
	for _, w := range words {
		if !haveCard[w.ID] {
			candidates = append(candidates, srs.NewCard(w.ID, now))
		}
	}

	due := srs.SelectDue(candidates, now, limit)

	items := make([]Item, 0, len(due))
	for _, c := range due {
		items = append(items, Item{Word: wordsByID[c.WordID], Card: c})
	}
	return items, nil
}

// SubmitAttempt auto-rates a typed attempt. Exact and near-miss attempts are
// recorded as reviews and reschedule the card. Incorrect attempts are not
// recorded; the caller reveals the answer and follows up with RateManually.
func (s *Service) SubmitAttempt(ctx context.Context, wordID, attempt string, responseTimeMs int64) (*AttemptResult, error) {
	w, err := s.words.FindByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("words.FindByID(%s) > %w", wordID, err)
	}
	if w == nil {
		return nil, fmt.Errorf("%w: %s", word.ErrNotFound, wordID)
	}

	outcome, quality := AutoRate(attempt, w.Text)
	result := &AttemptResult{
		Outcome: outcome,
		Quality: quality,
		Word:    *w,
	}

	if outcome == OutcomeIncorrect {
		return result, nil
	}

	card, err := s.record(ctx, w.ID, quality, true, responseTimeMs)
	if err != nil {
		return nil, err
	}
	result.Recorded = true
	result.Card = card
	return result, nil
}

// RateManually records a self-assessed grade for a word and reschedules it.
func (s *Service) RateManually(ctx context.Context, wordID string, quality int) (*srs.Card, error) {
	if quality < MinQuality || quality > MaxQuality {
		return nil, fmt.Errorf("%w: quality must be between %d and %d, got %d", ErrInvalidQuality, MinQuality, MaxQuality, quality)
	}

	w, err := s.words.FindByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("words.FindByID(%s) > %w", wordID, err)
	}
	if w == nil {
		return nil, fmt.Errorf("%w: %s", word.ErrNotFound, wordID)
	}

	return s.record(ctx, wordID, quality, false, 0)
}

// DeleteWord removes a word together with its reviews and card. There is no
// cascade in the schema; this is three separate deletes.
func (s *Service) DeleteWord(ctx context.Context, wordID string) error {
	if err := s.words.Delete(ctx, wordID); err != nil {
		return fmt.Errorf("words.Delete(%s) > %w", wordID, err)
	}
	if err := s.reviews.DeleteByWord(ctx, wordID); err != nil {
		return fmt.Errorf("reviews.DeleteByWord(%s) > %w", wordID, err)
	}
	if err := s.cards.DeleteByWord(ctx, wordID); err != nil {
		return fmt.Errorf("cards.DeleteByWord(%s) > %w", wordID, err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, wordID string, quality int, auto bool, responseTimeMs int64) (*srs.Card, error) {
	now := s.now()

	card, err := s.cards.FindByWord(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("cards.FindByWord(%s) > %w", wordID, err)
	}
	if card == nil {
		fresh := srs.NewCard(wordID, now)
		card = &fresh
	}
	card.Review(quality, now)

	if err := s.reviews.Create(ctx, &review.Review{
		WordID:         wordID,
		ReviewedAt:     now.UTC(),
		Quality:        quality,
		Auto:           auto,
		ResponseTimeMs: responseTimeMs,
	}); err != nil {
		return nil, fmt.Errorf("reviews.Create() > %w", err)
	}
	if err := s.cards.Upsert(ctx, card); err != nil {
		return nil, fmt.Errorf("cards.Upsert() > %w", err)
	}
	return card, nil
}
