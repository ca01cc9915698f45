package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbapilot/internal/cli"
	"github.com/at-ishikawa/verbapilot/internal/config"
	"github.com/at-ishikawa/verbapilot/internal/export"
	"github.com/at-ishikawa/verbapilot/internal/translator"
)

func newTranslateCommand() *cobra.Command {
	var to, from, output string
	command := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text and point out the idioms and slang it contains",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newTranslator(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if to == "" {
				to = cfg.Challenge.DefaultTarget
			}
			index := languageIndex(ctx, cfg)
			target, err := resolveTarget(index, to)
			if err != nil {
				return err
			}
			source, err := resolveSource(index, from)
			if err != nil {
				return err
			}

			result, err := client.Translate(ctx, text, target.Code, source)
			if err != nil {
				return providerError(err)
			}

			report := export.Report{
				Text:           text,
				SourceLanguage: result.DetectedLanguage,
				Targets:        []export.Target{{Language: target.Code, Name: target.Name, Text: result.Text}},
				Expressions:    newPhraseStore(cfg, "").Match(text),
				GeneratedAt:    time.Now(),
			}
			if !translator.IsAutoDetect(source) {
				report.SourceLanguage = source
			}
			return present(cmd, cfg, report, output)
		},
	}
	command.Flags().StringVar(&to, "to", "", "target language code or name (defaults to challenge.default_target)")
	command.Flags().StringVar(&from, "from", translator.AutoDetect, "source language code or name, auto to detect")
	command.Flags().StringVarP(&output, "output", "o", "", "also save the result to a .txt, .md or .pdf file")
	return command
}

func newMultiCommand() *cobra.Command {
	var targets []string
	var from, output string
	command := &cobra.Command{
		Use:   "multi [text]",
		Short: fmt.Sprintf("Translate text into up to %d languages at once", maxMultiTargets),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(targets) == 0 || len(targets) > maxMultiTargets {
				return fmt.Errorf("--to takes between 1 and %d languages, got %d", maxMultiTargets, len(targets))
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newTranslator(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			index := languageIndex(ctx, cfg)
			report := export.Report{
				Text:        text,
				Expressions: newPhraseStore(cfg, "").Match(text),
				GeneratedAt: time.Now(),
			}
			codes := make([]string, 0, len(targets))
			for _, input := range targets {
				target, err := resolveTarget(index, input)
				if err != nil {
					return err
				}
				codes = append(codes, target.Code)
				report.Targets = append(report.Targets, export.Target{Language: target.Code, Name: target.Name})
			}
			source, err := resolveSource(index, from)
			if err != nil {
				return err
			}
			if !translator.IsAutoDetect(source) {
				report.SourceLanguage = source
			}

			results, err := client.TranslateMany(ctx, text, codes, source)
			if err != nil {
				return providerError(err)
			}
			for i := range report.Targets {
				report.Targets[i].Text = results[report.Targets[i].Language]
			}
			return present(cmd, cfg, report, output)
		},
	}
	command.Flags().StringSliceVar(&targets, "to", nil, fmt.Sprintf("comma separated target languages, at most %d", maxMultiTargets))
	command.Flags().StringVar(&from, "from", translator.AutoDetect, "source language code or name, auto to detect")
	command.Flags().StringVarP(&output, "output", "o", "", "also save the result to a .txt, .md or .pdf file")
	return command
}

const maxMultiTargets = 3

func present(cmd *cobra.Command, cfg *config.Config, report export.Report, output string) error {
	cli.RenderTranslation(cmd.OutOrStdout(), report)
	if output == "" {
		return nil
	}
	writer, err := export.NewWriter(cfg.Export.TemplateFile)
	if err != nil {
		return err
	}
	path, err := writer.Write(output, report)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to %s\n", path)
	return nil
}
