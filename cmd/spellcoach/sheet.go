package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spellcoach/spellcoach/internal/transfer"
	"github.com/spellcoach/spellcoach/internal/word"
)

func newSheetCommand() *cobra.Command {
	var (
		title   string
		limit   int
		dueOnly bool
	)
	command := &cobra.Command{
		Use:   "sheet",
		Short: "Write a printable practice sheet as PDF",
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
			now := time.Now()

			var sheetWords []word.Word
			if dueOnly {
				items, err := s.study.Next(ctx, limit)
				if err != nil {
					return fmt.Errorf("study.Next() > %w", err)
				}
				for _, item := range items {
					sheetWords = append(sheetWords, item.Word)
				}
			} else {
				all, err := s.words.FindAll(ctx)
				if err != nil {
					return fmt.Errorf("words.FindAll() > %w", err)
				}
				if limit > 0 && len(all) > limit {
					all = all[:limit]
				}
				sheetWords = all
			}
			if len(sheetWords) == 0 {
				fmt.Println("No words for a sheet.")
				return nil
			}

			path, err := transfer.WriteSheetPDF(sheetWords, title, cfg.Outputs.SheetDirectory, now)
			if err != nil {
				return fmt.Errorf("transfer.WriteSheetPDF() > %w", err)
			}
			fmt.Printf("Wrote %s with %d words\n", path, len(sheetWords))
			return nil
		},
	}
	command.Flags().StringVar(&title, "title", "Spelling Practice", "Sheet title")
	command.Flags().IntVar(&limit, "limit", 20, "Maximum number of words")
	command.Flags().BoolVar(&dueOnly, "due", false, "Only include words that are due now")

	return command
}
