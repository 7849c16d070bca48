package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spellcoach/spellcoach/internal/inference"
	"github.com/spellcoach/spellcoach/internal/inference/openai"
	"github.com/spellcoach/spellcoach/internal/settings"
	"github.com/spellcoach/spellcoach/internal/word"
)

func newGenerateCommand() *cobra.Command {
	var (
		count int
		age   int
		save  bool
	)
	command := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Ask the language model for new words about a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable is required")
			}

			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			fmt.Printf("Using OpenAI provider (model: %s)\n", cfg.OpenAI.Model)
			openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
			defer func() {
				_ = openaiClient.Close()
			}()

			ctx := cmd.Context()
			existing, err := s.words.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("words.FindAll() > %w", err)
			}
			avoid := make([]string, 0, len(existing))
			for _, known := range existing {
				avoid = append(avoid, known.Text)
			}

			learnerSettings, err := settings.NewFileRepository(cfg.Settings.Path).Load()
			if err != nil {
				return fmt.Errorf("settings.Load() > %w", err)
			}

			result, err := openaiClient.GenerateWords(ctx, inference.GenerateWordsRequest{
				Topic:          strings.TrimSpace(args[0]),
				Count:          count,
				Age:            age,
				AvoidWords:     avoid,
				PromptTemplate: learnerSettings.PromptTemplate,
			})
			if err != nil {
				return fmt.Errorf("openaiClient.GenerateWords() > %w", err)
			}
			if len(result.Suggestions) == 0 {
				fmt.Println("No usable suggestions came back. Try another topic.")
				return nil
			}

			for _, suggestion := range result.Suggestions {
				fmt.Printf("%-20s %s\n", suggestion.Word, suggestion.Hint)
			}
			if !save {
				fmt.Println("\nRun again with --save to add these words.")
				return nil
			}

			added := 0
			for _, suggestion := range result.Suggestions {
				id, err := word.NewID()
				if err != nil {
					return fmt.Errorf("word.NewID() > %w", err)
				}
				created := &word.Word{ID: id, Text: suggestion.Word, Hint: suggestion.Hint}
				if err := s.words.Create(ctx, created); err != nil {
					return fmt.Errorf("words.Create(%s) > %w", suggestion.Word, err)
				}
				added++
			}
			fmt.Printf("\nAdded %d words\n", added)
			return nil
		},
	}
	command.Flags().IntVar(&count, "count", inference.DefaultGenerateCount, "Number of words to ask for")
	command.Flags().IntVar(&age, "age", 0, "Child's age, if the hints should be tuned for it")
	command.Flags().BoolVar(&save, "save", false, "Add the suggestions to the word list")

	return command
}
