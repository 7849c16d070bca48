package study

import "strings"

// Outcome classifies a typed attempt against the target word.
type Outcome string

const (
	// OutcomeExact is a perfect match after normalization.
	OutcomeExact Outcome = "exact"
	// OutcomeNearMiss is within one edit (including adjacent transposition).
	OutcomeNearMiss Outcome = "near_miss"
	// OutcomeIncorrect is everything else.
	OutcomeIncorrect Outcome = "incorrect"
)

// Quality grades under the SM-2 convention for each outcome.
const (
	qualityExact     = 5
	qualityNearMiss  = 3
	qualityIncorrect = 1
)

// AutoRate classifies an attempt without manual self-assessment.
// Matching is case-insensitive and ignores surrounding and repeated
// whitespace. A single typo (one inserted, deleted, or substituted letter,
// or two adjacent letters swapped) still counts as a pass, graded as a hard
// recall. An empty attempt is always incorrect.
func AutoRate(attempt, target string) (Outcome, int) {
	a := normalize(attempt)
	t := normalize(target)

	if a == "" {
		return OutcomeIncorrect, qualityIncorrect
	}
	if a == t {
		return OutcomeExact, qualityExact
	}
	if withinOneEdit(a, t) {
		return OutcomeNearMiss, qualityNearMiss
	}
	return OutcomeIncorrect, qualityIncorrect
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// withinOneEdit reports whether a and b are exactly one Damerau-Levenshtein
// edit apart: a single insertion, deletion, substitution, or swap of two
// adjacent runes. Equal strings return false; the caller handles those.
func withinOneEdit(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(rb)-len(ra) > 1 {
		return false
	}

	// Same length: either one substitution or one adjacent transposition.
	if len(ra) == len(rb) {
		diff := -1
		for i := range ra {
			if ra[i] == rb[i] {
				continue
			}
			if diff >= 0 {
				// A second mismatch is only allowed as the tail of a swap.
				if diff == i-1 && ra[diff] == rb[i] && ra[i] == rb[diff] {
					diff = len(ra) // sentinel: swap consumed
					continue
				}
				return false
			}
			diff = i
		}
		return diff >= 0
	}

	// Length differs by one: a must be b with a single rune removed.
	i, j := 0, 0
	skipped := false
	for i < len(ra) && j < len(rb) {
		if ra[i] == rb[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		j++
	}
	return true
}
