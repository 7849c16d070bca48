package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCardReview(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("successful reviews stretch the interval", func(t *testing.T) {
		card := NewCard("word-1", now)
		assert.True(t, card.IsDue(now))

		card.Review(5, now)
		assert.Equal(t, 1, card.Repetitions)
		assert.Equal(t, 1, card.IntervalDays)
		assert.InDelta(t, 2.6, card.EasinessFactor, 0.001)
		assert.Equal(t, now.AddDate(0, 0, 1), card.DueAt)
		assert.False(t, card.IsDue(now))

		card.Review(5, now.AddDate(0, 0, 1))
		assert.Equal(t, 2, card.Repetitions)
		assert.Equal(t, 6, card.IntervalDays)

		card.Review(5, now.AddDate(0, 0, 7))
		assert.Equal(t, 3, card.Repetitions)
		assert.Equal(t, 17, card.IntervalDays) // ceil(6 * 2.8)
	})

	t.Run("failed review resets repetitions and interval", func(t *testing.T) {
		card := Card{
			WordID:         "word-1",
			EasinessFactor: 2.8,
			IntervalDays:   17,
			Repetitions:    3,
			DueAt:          now,
		}

		card.Review(1, now)
		assert.Equal(t, 0, card.Repetitions)
		assert.Equal(t, 1, card.IntervalDays)
		assert.InDelta(t, 2.26, card.EasinessFactor, 0.001)
		assert.Equal(t, now.AddDate(0, 0, 1), card.DueAt)
	})

	t.Run("quality 3 passes", func(t *testing.T) {
		card := NewCard("word-1", now)
		card.Review(3, now)
		assert.Equal(t, 1, card.Repetitions)
		assert.Equal(t, 1, card.IntervalDays)
	})
}

func TestCardIsLearned(t *testing.T) {
	assert.False(t, Card{IntervalDays: 20}.IsLearned())
	assert.True(t, Card{IntervalDays: 21}.IsLearned())
	assert.True(t, Card{IntervalDays: 60}.IsLearned())
}

func TestSelectDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cards := []Card{
		{WordID: "reviewed-late", Repetitions: 2, EasinessFactor: 2.5, DueAt: now.AddDate(0, 0, -1)},
		{WordID: "not-due", Repetitions: 1, EasinessFactor: 1.5, DueAt: now.AddDate(0, 0, 3)},
		{WordID: "new", Repetitions: 0, EasinessFactor: 2.5, DueAt: now},
		{WordID: "hard", Repetitions: 4, EasinessFactor: 1.4, DueAt: now},
		{WordID: "reviewed-early", Repetitions: 2, EasinessFactor: 2.5, DueAt: now.AddDate(0, 0, -3)},
	}

	t.Run("orders new, then hard, then by due time", func(t *testing.T) {
		due := SelectDue(cards, now, 0)

		ids := make([]string, 0, len(due))
		for _, c := range due {
			ids = append(ids, c.WordID)
		}
		assert.Equal(t, []string{"new", "hard", "reviewed-early", "reviewed-late"}, ids)
	})

	t.Run("applies the limit", func(t *testing.T) {
		due := SelectDue(cards, now, 2)
		assert.Len(t, due, 2)
		assert.Equal(t, "new", due[0].WordID)
		assert.Equal(t, "hard", due[1].WordID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SelectDue(nil, now, 10))
	})
}
