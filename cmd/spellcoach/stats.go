package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spellcoach/spellcoach/internal/statistics"
)

// byDayWindowDays bounds the per-day listing to the recent past.
const byDayWindowDays = 30

func newStatsCommand() *cobra.Command {
	var byDay bool
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			ctx := cmd.Context()
			words, err := s.words.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("words.FindAll() > %w", err)
			}
			cards, err := s.cards.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("cards.FindAll() > %w", err)
			}
			reviews, err := s.reviews.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("reviews.FindAll() > %w", err)
			}

			now := time.Now()
			summary := statistics.Summarize(words, cards, reviews, now)
			fmt.Printf("Words:         %d\n", summary.TotalWords)
			fmt.Printf("Due now:       %d\n", summary.DueNow)
			fmt.Printf("Learned:       %d\n", summary.Learned)
			fmt.Printf("Reviews total: %d\n", summary.ReviewsTotal)
			fmt.Printf("Reviews today: %d\n", summary.ReviewsToday)

			if byDay {
				recent, err := s.reviews.FindSince(ctx, now.AddDate(0, 0, -byDayWindowDays))
				if err != nil {
					return fmt.Errorf("reviews.FindSince() > %w", err)
				}
				fmt.Println()
				for _, day := range statistics.ReviewsByDay(recent) {
					fmt.Printf("%s %d\n", day.Day, day.Count)
				}
			}
			return nil
		},
	}
	command.Flags().BoolVar(&byDay, "by-day", false, "Also show review counts per day")

	return command
}
