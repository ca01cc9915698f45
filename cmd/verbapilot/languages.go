package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbapilot/internal/cli"
	"github.com/at-ishikawa/verbapilot/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages the translator supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			languages, err := language.NewCatalog(cfg.Languages.URL, cfg.Languages.CacheDirectory).List(cmd.Context())
			if err != nil {
				return providerError(err)
			}
			cli.RenderLanguages(cmd.OutOrStdout(), languages)
			return nil
		},
	}
}
