// Package statistics derives progress numbers from words, cards, and reviews.
package statistics

import (
	"sort"
	"time"

	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/word"
)

// Summary holds the learner's progress at a point in time.
type Summary struct {
	TotalWords   int `json:"total_words"`
	DueNow       int `json:"due_now"`
	Learned      int `json:"learned"`
	ReviewsTotal int `json:"reviews_total"`
	ReviewsToday int `json:"reviews_today"`
}

// DayCount is the number of reviews recorded on a calendar day.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Summarize computes the progress summary. Words with no card yet count as
// due, matching the study loop's treatment of unseen words.
func Summarize(words []word.Word, cards []srs.Card, reviews []review.Review, now time.Time) Summary {
	s := Summary{
		TotalWords:   len(words),
		ReviewsTotal: len(reviews),
	}

	cardsByWord := make(map[string]srs.Card, len(cards))
	for _, c := range cards {
		cardsByWord[c.WordID] = c
	}

	for _, w := range words {
		c, ok := cardsByWord[w.ID]
		if !ok {
			s.DueNow++
			continue
		}
		if c.IsDue(now) {
			s.DueNow++
		}
		if c.IsLearned() {
			s.Learned++
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, r := range reviews {
		if !r.ReviewedAt.Before(dayStart) {
			s.ReviewsToday++
		}
	}

	return s
}

// ReviewsByDay buckets reviews into calendar days, oldest first.
func ReviewsByDay(reviews []review.Review) []DayCount {
	counts := make(map[string]int)
	for _, r := range reviews {
		counts[r.ReviewedAt.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]DayCount, 0, len(days))
	for _, day := range days {
		result = append(result, DayCount{Day: day, Count: counts[day]})
	}
	return result
}
