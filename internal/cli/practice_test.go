package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/study"
	"github.com/spellcoach/spellcoach/internal/word"
)

type stubWords struct {
	words []word.Word
}

func (r *stubWords) FindAll(ctx context.Context) ([]word.Word, error) { return r.words, nil }

func (r *stubWords) FindByID(ctx context.Context, id string) (*word.Word, error) {
	for _, w := range r.words {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (r *stubWords) FindByText(ctx context.Context, text string) (*word.Word, error) {
	return nil, nil
}

func (r *stubWords) Create(ctx context.Context, w *word.Word) error { return nil }
func (r *stubWords) Update(ctx context.Context, w *word.Word) error { return nil }
func (r *stubWords) Delete(ctx context.Context, id string) error    { return nil }

type stubReviews struct {
	reviews []review.Review
}

func (r *stubReviews) FindAll(ctx context.Context) ([]review.Review, error) { return r.reviews, nil }

func (r *stubReviews) FindByWord(ctx context.Context, wordID string) ([]review.Review, error) {
	return nil, nil
}

func (r *stubReviews) FindSince(ctx context.Context, since time.Time) ([]review.Review, error) {
	return nil, nil
}

func (r *stubReviews) Create(ctx context.Context, rev *review.Review) error {
	r.reviews = append(r.reviews, *rev)
	return nil
}

func (r *stubReviews) DeleteByWord(ctx context.Context, wordID string) error { return nil }

type stubCards struct {
	cards map[string]srs.Card
}

func (r *stubCards) FindAll(ctx context.Context) ([]srs.Card, error) {
	var cards []srs.Card
	for _, c := range r.cards {
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *stubCards) FindByWord(ctx context.Context, wordID string) (*srs.Card, error) {
	c, ok := r.cards[wordID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *stubCards) Upsert(ctx context.Context, card *srs.Card) error {
	r.cards[card.WordID] = *card
	return nil
}

func (r *stubCards) DeleteByWord(ctx context.Context, wordID string) error {
	delete(r.cards, wordID)
	return nil
}

func newTestPracticeCLI(t *testing.T, input string, words []word.Word) (*PracticeCLI, *stubReviews) {
	t.Helper()

	reviews := &stubReviews{}
	service := study.NewService(&stubWords{words: words}, reviews, &stubCards{cards: make(map[string]srs.Card)})

	practiceCLI, err := NewPracticeCLI(context.Background(), service, 10)
	require.NoError(t, err)
	practiceCLI.stdinReader = bufio.NewReader(strings.NewReader(input))
	practiceCLI.stdoutWriter = &bytes.Buffer{}
	return practiceCLI, reviews
}

func TestPracticeCLI_Session(t *testing.T) {
	color.NoColor = true

	t.Run("no items returns errEnd", func(t *testing.T) {
		practiceCLI, _ := newTestPracticeCLI(t, "", nil)

		err := practiceCLI.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
	})

	t.Run("correct answer records a review and removes the item", func(t *testing.T) {
		practiceCLI, reviews := newTestPracticeCLI(t, "because\n", []word.Word{
			{ID: "w1", Text: "because", Hint: "The reason for something."},
		})
		require.Equal(t, 1, practiceCLI.ItemCount())

		err := practiceCLI.Session(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, practiceCLI.ItemCount())
		assert.Equal(t, 1, practiceCLI.correct)

		require.Len(t, reviews.reviews, 1)
		assert.Equal(t, 5, reviews.reviews[0].Quality)
		assert.True(t, reviews.reviews[0].Auto)
	})

	t.Run("near miss records a hard recall", func(t *testing.T) {
		practiceCLI, reviews := newTestPracticeCLI(t, "becouse\n", []word.Word{
			{ID: "w1", Text: "because", Hint: "The reason for something."},
		})

		err := practiceCLI.Session(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, practiceCLI.correct)

		require.Len(t, reviews.reviews, 1)
		assert.Equal(t, 3, reviews.reviews[0].Quality)
	})

	t.Run("wrong answer asks for a copy and records a failure", func(t *testing.T) {
		practiceCLI, reviews := newTestPracticeCLI(t, "xyz\nbecause\n", []word.Word{
			{ID: "w1", Text: "because", Hint: "The reason for something."},
		})

		err := practiceCLI.Session(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, practiceCLI.ItemCount())

		require.Len(t, reviews.reviews, 1)
		assert.Equal(t, 1, reviews.reviews[0].Quality)
		assert.False(t, reviews.reviews[0].Auto)
	})
}
