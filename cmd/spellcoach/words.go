package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spellcoach/spellcoach/internal/transfer"
	"github.com/spellcoach/spellcoach/internal/word"
)

type importFormat string

func (f *importFormat) Set(val string) error {
	for _, format := range allImportFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f importFormat) String() string {
	return string(f)
}

func (f *importFormat) Type() string {
	return "format"
}

const (
	importFormatAuto importFormat = "auto"
	importFormatJSON importFormat = "json"
	importFormatXLSX importFormat = "xlsx"
)

var (
	_                pflag.Value = (*importFormat)(nil)
	allImportFormats             = []importFormat{importFormatAuto, importFormatJSON, importFormatXLSX}
)

func newWordsCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "words",
		Short: "Manage the word list",
	}

	rootCommand.AddCommand(
		newWordsListCommand(),
		newWordsShowCommand(),
		newWordsAddCommand(),
		newWordsRemoveCommand(),
		newWordsImportCommand(),
		newWordsExportCommand(),
	)
	return &rootCommand
}

func newWordsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every word with its schedule",
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
			if len(words) == 0 {
				fmt.Println("No words yet. Add some with `spellcoach words add`.")
				return nil
			}

			cards, err := s.cards.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("cards.FindAll() > %w", err)
			}
			cardsByWord := make(map[string]string, len(cards))
			for _, c := range cards {
				cardsByWord[c.WordID] = fmt.Sprintf("due %s, interval %dd",
					c.DueAt.Format("2006-01-02"), c.IntervalDays)
			}

			for _, w := range words {
				schedule, ok := cardsByWord[w.ID]
				if !ok {
					schedule = "new"
				}
				fmt.Printf("%-20s %-30s %s\n", w.Text, truncate(w.Hint, 30), schedule)
			}
			return nil
		},
	}
}

func newWordsShowCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "show <word>",
		Short: "Show a word's schedule and recent reviews",
		Args:  cobra.ExactArgs(1),
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
			text := strings.ToLower(strings.TrimSpace(args[0]))
			found, err := s.words.FindByText(ctx, text)
			if err != nil {
				return fmt.Errorf("words.FindByText(%s) > %w", text, err)
			}
			if found == nil {
				return fmt.Errorf("no such word: %s", text)
			}

			fmt.Printf("Word:  %s\n", found.Text)
			if found.Hint != "" {
				fmt.Printf("Hint:  %s\n", found.Hint)
			}
			fmt.Printf("Added: %s\n", found.CreatedAt.Format("2006-01-02"))

			card, err := s.cards.FindByWord(ctx, found.ID)
			if err != nil {
				return fmt.Errorf("cards.FindByWord(%s) > %w", found.ID, err)
			}
			if card == nil {
				fmt.Println("Not reviewed yet.")
				return nil
			}
			fmt.Printf("Due %s, interval %dd, easiness %.2f, %d repetitions\n",
				card.DueAt.Format("2006-01-02"), card.IntervalDays, card.EasinessFactor, card.Repetitions)

			reviews, err := s.reviews.FindByWord(ctx, found.ID)
			if err != nil {
				return fmt.Errorf("reviews.FindByWord(%s) > %w", found.ID, err)
			}
			if limit > 0 && len(reviews) > limit {
				reviews = reviews[:limit]
			}
			for _, r := range reviews {
				rated := "manual"
				if r.Auto {
					rated = "auto"
				}
				fmt.Printf("%s quality %d (%s)\n", r.ReviewedAt.Format("2006-01-02 15:04"), r.Quality, rated)
			}
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 10, "Maximum number of reviews to show")

	return command
}

func newWordsAddCommand() *cobra.Command {
	var hint string
	command := &cobra.Command{
		Use:   "add <word>",
		Short: "Add a word to practice",
		Args:  cobra.ExactArgs(1),
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

			id, err := word.NewID()
			if err != nil {
				return fmt.Errorf("word.NewID() > %w", err)
			}
			created := &word.Word{
				ID:   id,
				Text: strings.ToLower(strings.TrimSpace(args[0])),
				Hint: strings.TrimSpace(hint),
			}
			if err := s.words.Create(cmd.Context(), created); err != nil {
				return fmt.Errorf("words.Create(%s) > %w", created.Text, err)
			}
			fmt.Printf("Added %q\n", created.Text)
			return nil
		},
	}
	command.Flags().StringVar(&hint, "hint", "", "Hint sentence shown during practice")

	return command
}

func newWordsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <word>",
		Short: "Remove a word and its review history",
		Args:  cobra.ExactArgs(1),
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
			text := strings.ToLower(strings.TrimSpace(args[0]))
			found, err := s.words.FindByText(ctx, text)
			if err != nil {
				return fmt.Errorf("words.FindByText(%s) > %w", text, err)
			}
			if found == nil {
				return fmt.Errorf("no such word: %s", text)
			}

			if err := s.study.DeleteWord(ctx, found.ID); err != nil {
				return fmt.Errorf("study.DeleteWord(%s) > %w", found.ID, err)
			}
			fmt.Printf("Removed %q\n", text)
			return nil
		},
	}
}

func newWordsImportCommand() *cobra.Command {
	var (
		format     = importFormatAuto
		wordColumn int
		hintColumn int
		skipHeader bool
	)
	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from a JSON backup or an xlsx sheet",
		Args:  cobra.ExactArgs(1),
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
			filePath := args[0]

			resolved := format
			if resolved == importFormatAuto {
				resolved = importFormatJSON
				if strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
					resolved = importFormatXLSX
				}
			}

			var result *transfer.ImportResult
			if resolved == importFormatXLSX {
				xlsxConfig := transfer.DefaultXLSXImportConfig(filePath)
				xlsxConfig.WordColumn = wordColumn
				xlsxConfig.HintColumn = hintColumn
				xlsxConfig.SkipHeader = skipHeader
				result, err = transfer.ImportXLSX(ctx, s.words, xlsxConfig)
				if err != nil {
					return fmt.Errorf("transfer.ImportXLSX(%s) > %w", filePath, err)
				}
			} else {
				file, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("os.Open(%s) > %w", filePath, err)
				}
				defer func() {
					_ = file.Close()
				}()

				importer := transfer.NewImporter(s.words, s.reviews, s.cards)
				result, err = importer.Import(ctx, file)
				if err != nil {
					return fmt.Errorf("importer.Import(%s) > %w", filePath, err)
				}
			}

			fmt.Printf("Imported %d words (%d skipped)\n", result.WordsCreated, result.WordsSkipped)
			return nil
		},
	}
	command.Flags().Var(&format, "format", fmt.Sprintf("Input format, one of %v", allImportFormats))
	command.Flags().IntVar(&wordColumn, "word-column", 0, "Zero-based column holding the word (xlsx only)")
	command.Flags().IntVar(&hintColumn, "hint-column", 1, "Zero-based column holding the hint (xlsx only)")
	command.Flags().BoolVar(&skipHeader, "skip-header", true, "Skip the first row (xlsx only)")

	return command
}

func newWordsExportCommand() *cobra.Command {
	var output string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export words, reviews, and schedules as JSON",
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

			exporter := transfer.NewExporter(s.words, s.reviews, s.cards)
			if output == "" {
				return exporter.Export(cmd.Context(), os.Stdout)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", output, err)
			}
			defer func() {
				_ = file.Close()
			}()

			if err := exporter.Export(cmd.Context(), file); err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", output)
			return nil
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return command
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max-3]
	// Back off a partially cut multi-byte rune.
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + "..."
}
