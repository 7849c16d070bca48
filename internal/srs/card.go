package srs

import (
	"sort"
	"time"
)

// Card holds the scheduling state for a single word.
type Card struct {
	WordID         string    `db:"word_id" json:"word_id"`
	EasinessFactor float64   `db:"easiness_factor" json:"easiness_factor"`
	IntervalDays   int       `db:"interval_days" json:"interval_days"`
	Repetitions    int       `db:"repetitions" json:"repetitions"`
	DueAt          time.Time `db:"due_at" json:"due_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// NewCard creates a card for a word that has never been reviewed.
// A fresh card is due immediately.
func NewCard(wordID string, now time.Time) Card {
	return Card{
		WordID:         wordID,
		EasinessFactor: DefaultEasinessFactor,
		IntervalDays:   0,
		Repetitions:    0,
		DueAt:          now,
	}
}

// Review applies a quality grade to the card and reschedules it.
func (c *Card) Review(quality int, now time.Time) {
	if quality >= PassQuality {
		c.Repetitions++
	} else {
		c.Repetitions = 0
	}

	c.EasinessFactor = NextEasinessFactor(c.EasinessFactor, quality)
	c.IntervalDays = NextInterval(c.IntervalDays, c.EasinessFactor, quality, c.Repetitions)
	c.DueAt = now.AddDate(0, 0, c.IntervalDays)
}

// IsDue reports whether the card is due at the given time.
func (c Card) IsDue(now time.Time) bool {
	return !c.DueAt.After(now)
}

// IsLearned reports whether the card's word counts as learned.
func (c Card) IsLearned() bool {
	return c.IntervalDays >= LearnedIntervalDays
}

// SelectDue filters cards due at the given time and orders them for
// presentation: never-reviewed cards first, then the lowest easiness factor,
// then the earliest due time. A non-positive limit means no limit.
func SelectDue(cards []Card, now time.Time, limit int) []Card {
	var due []Card
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if (due[i].Repetitions == 0) != (due[j].Repetitions == 0) {
			return due[i].Repetitions == 0
		}
		if due[i].EasinessFactor != due[j].EasinessFactor {
			return due[i].EasinessFactor < due[j].EasinessFactor
		}
		return due[i].DueAt.Before(due[j].DueAt)
	})

	if limit > 0 && len(due) > limit {
		return due[:limit]
	}
	return due
}
