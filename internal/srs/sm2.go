// Package srs implements the spaced-repetition scheduler.
package srs

import "math"

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3

	// MaxIntervalDays caps how far out a card can be scheduled.
	MaxIntervalDays = 365

	// PassQuality is the lowest grade counted as a correct answer.
	PassQuality = 3

	// LearnedIntervalDays is the interval at which a word counts as learned.
	// Derived label only, never stored.
	LearnedIntervalDays = 21
)

// NextEasinessFactor calculates the new easiness factor for a quality grade.
// Quality follows the SM-2 convention: 0-2 failed, 3-5 correct.
func NextEasinessFactor(ef float64, quality int) float64 {
	if ef == 0 {
		ef = DefaultEasinessFactor
	}

	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)

	return math.Max(ef+delta, MinEasinessFactor)
}

// NextInterval calculates the next review interval in days.
// repetitions is the count of consecutive correct answers including this one.
func NextInterval(lastInterval int, ef float64, quality int, repetitions int) int {
	if ef == 0 {
		ef = DefaultEasinessFactor
	}

	// Failed answer: back to a one-day interval.
	if quality < PassQuality {
		return 1
	}

	var interval int
	switch repetitions {
	case 0, 1:
		interval = 1
	case 2:
		interval = 6
	default:
		if lastInterval < 1 {
			lastInterval = 1
		}
		interval = int(math.Ceil(float64(lastInterval) * ef))
	}

	if interval > MaxIntervalDays {
		return MaxIntervalDays
	}
	return interval
}
