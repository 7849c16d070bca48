package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/word"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	words := []word.Word{
		{ID: "w1", Text: "because"},
		{ID: "w2", Text: "friend"},
		{ID: "w3", Text: "school"},
		{ID: "w4", Text: "giraffe"},
	}
	cards := []srs.Card{
		{WordID: "w1", IntervalDays: 30, DueAt: now.AddDate(0, 0, 10)}, // learned, not due
		{WordID: "w2", IntervalDays: 6, DueAt: now.AddDate(0, 0, -1)},  // due
		{WordID: "w3", IntervalDays: 1, DueAt: now.AddDate(0, 0, 2)},   // neither
		// w4 has no card and counts as due
	}
	reviews := []review.Review{
		{WordID: "w1", ReviewedAt: now.AddDate(0, 0, -10)},
		{WordID: "w2", ReviewedAt: now.Add(-2 * time.Hour)},
		{WordID: "w2", ReviewedAt: now.Add(-1 * time.Hour)},
	}

	summary := Summarize(words, cards, reviews, now)
	assert.Equal(t, 4, summary.TotalWords)
	assert.Equal(t, 2, summary.DueNow)
	assert.Equal(t, 1, summary.Learned)
	assert.Equal(t, 3, summary.ReviewsTotal)
	assert.Equal(t, 2, summary.ReviewsToday)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, nil, nil, time.Now())
	assert.Equal(t, Summary{}, summary)
}

func TestReviewsByDay(t *testing.T) {
	day1 := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	reviews := []review.Review{
		{ReviewedAt: day2},
		{ReviewedAt: day1},
		{ReviewedAt: day1.Add(5 * time.Hour)},
	}

	byDay := ReviewsByDay(reviews)
	assert.Equal(t, []DayCount{
		{Day: "2026-02-27", Count: 2},
		{Day: "2026-03-01", Count: 1},
	}, byDay)
}
