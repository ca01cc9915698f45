package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbapilot/internal/cli"
	"github.com/at-ishikawa/verbapilot/internal/history"
	"github.com/at-ishikawa/verbapilot/internal/quiz"
)

func newChallengeCommand() *cobra.Command {
	var to string
	var items int
	command := &cobra.Command{
		Use:   "challenge",
		Short: "Translate sample phrases yourself and earn XP for correct answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if items < 0 || items > 10 {
				return fmt.Errorf("--items must be between 1 and 10, got %d", items)
			}
			if items == 0 {
				items = cfg.Challenge.Items
			}
			if to == "" {
				to = cfg.Challenge.DefaultTarget
			}

			client, err := newTranslator(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			index := languageIndex(ctx, cfg)
			target, err := resolveTarget(index, to)
			if err != nil {
				return err
			}

			repo, closeRepo, err := newHistoryRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeRepo()
			}()

			session := quiz.NewSession(quiz.LoadPool(cfg.Challenge.PhrasesFile), items, cfg.Challenge.SourceLanguage, nil)
			challengeCLI := cli.NewChallengeCLI(session, client, repo, target.Code, target.Name, cmd.InOrStdin(), cmd.OutOrStdout())

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Challenge started! Press Ctrl+C to stop.")
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			err = challengeCLI.Run(ctx, challengeCLI)
			if errors.Is(err, cli.ErrTranslation) {
				return providerError(err)
			}
			return err
		},
	}
	command.Flags().StringVar(&to, "to", "", "target language code or name (defaults to challenge.default_target)")
	command.Flags().IntVar(&items, "items", 0, "phrases per round (defaults to challenge.items)")
	return command
}

func newXPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "xp",
		Short: "Show the XP earned in saved challenge rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, closeRepo, err := newHistoryRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeRepo()
			}()

			results, err := repo.FindAll(cmd.Context())
			if err != nil {
				return err
			}
			cli.RenderXP(cmd.OutOrStdout(), len(results), history.TotalXP(results))
			return nil
		},
	}
}
