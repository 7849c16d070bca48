package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/spellcoach/spellcoach/internal/study"
)

// PracticeCLI runs a terminal spelling session over the due queue.
type PracticeCLI struct {
	*InteractiveCLI
	studyService *study.Service
	items        []study.Item
	total        int
	correct      int
}

// NewPracticeCLI loads up to limit due items and prepares a session.
func NewPracticeCLI(ctx context.Context, studyService *study.Service, limit int) (*PracticeCLI, error) {
	items, err := studyService.Next(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("studyService.Next() > %w", err)
	}

	return &PracticeCLI{
		InteractiveCLI: newInteractiveCLI(),
		studyService:   studyService,
		items:          items,
		total:          len(items),
	}, nil
}

// ItemCount returns the number of remaining items.
func (r *PracticeCLI) ItemCount() int {
	return len(r.items)
}

func (r *PracticeCLI) nextItem() *study.Item {
	if len(r.items) == 0 {
		return nil
	}
	return &r.items[0]
}

func (r *PracticeCLI) removeCurrentItem() {
	if len(r.items) > 0 {
		r.items = r.items[1:]
	}
}

func (r *PracticeCLI) Session(ctx context.Context) error {
	currentItem := r.nextItem()
	if currentItem == nil {
		fmt.Println("No more words due right now!")
		if r.total > 0 {
			fmt.Printf("You got %d out of %d on the first try.\n", r.correct, r.total)
		}
		return errEnd
	}

	fmt.Printf("[%d/%d] ", r.total-len(r.items)+1, r.total)
	if currentItem.Word.Hint != "" {
		_, _ = r.italic.Println(currentItem.Word.Hint)
	} else {
		fmt.Println("(no hint for this word)")
	}
	_, _ = r.bold.Print("Spell the word: ")

	startedAt := time.Now()
	attempt, err := r.readLine()
	if err != nil {
		return err
	}
	responseTimeMs := time.Since(startedAt).Milliseconds()

	result, err := r.studyService.SubmitAttempt(ctx, currentItem.Word.ID, attempt, responseTimeMs)
	if err != nil {
		return fmt.Errorf("studyService.SubmitAttempt(%s) > %w", currentItem.Word.ID, err)
	}

	switch result.Outcome {
	case study.OutcomeExact:
		fmt.Print("✅ ")
		color.Green("Correct! The word is %s", r.bold.Sprintf("%s", result.Word.Text))
		r.correct++
	case study.OutcomeNearMiss:
		fmt.Print("✅ ")
		color.Yellow("Almost! The word is spelled %s", r.bold.Sprintf("%s", result.Word.Text))
	default:
		fmt.Print("❌ ")
		color.Red("Not quite. The word is spelled %s", r.bold.Sprintf("%s", result.Word.Text))
		if err := r.practiceReveal(ctx, result.Word.ID, result.Word.Text); err != nil {
			return err
		}
	}

	fmt.Println()
	r.removeCurrentItem()
	return nil
}

// practiceReveal has the learner copy the revealed word once, then records
// the miss so the scheduler brings the word back tomorrow.
func (r *PracticeCLI) practiceReveal(ctx context.Context, wordID, text string) error {
	_, _ = r.bold.Printf("Type it once to practice (%s): ", text)
	copied, err := r.readLine()
	if err != nil {
		return err
	}
	if outcome, _ := study.AutoRate(copied, text); outcome != study.OutcomeExact {
		color.Red("That's still not it. Keep an eye on this one!")
	}

	if _, err := r.studyService.RateManually(ctx, wordID, 1); err != nil {
		return fmt.Errorf("studyService.RateManually(%s) > %w", wordID, err)
	}
	return nil
}
