package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spellcoach/spellcoach/internal/cli"
)

func newPracticeCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "practice",
		Short: "Start an interactive spelling session over the due words",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if limit <= 0 {
				limit = cfg.Study.SessionLimit
			}

			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			practiceCLI, err := cli.NewPracticeCLI(cmd.Context(), s.study, limit)
			if err != nil {
				return err
			}
			if practiceCLI.ItemCount() == 0 {
				fmt.Println("Nothing is due right now. Come back later or add new words!")
				return nil
			}

			fmt.Printf("Starting a spelling session with %d words\n\n", practiceCLI.ItemCount())
			return practiceCLI.Run(context.Background(), practiceCLI)
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "Maximum number of words in the session")

	return command
}
