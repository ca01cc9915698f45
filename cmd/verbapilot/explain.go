package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/verbapilot/internal/cli"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
)

type MatchModeFlag phrase.MatchMode

// Set implements pflag.Value.
func (m *MatchModeFlag) Set(v string) error {
	mode, err := phrase.ParseMatchMode(v)
	if err != nil {
		modes := make([]string, len(phrase.AllMatchModes))
		for i, mode := range phrase.AllMatchModes {
			modes[i] = string(mode)
		}
		return fmt.Errorf("invalid value %q, valid values are %s", v, strings.Join(modes, ", "))
	}
	*m = MatchModeFlag(mode)
	return nil
}

// String implements pflag.Value.
func (m *MatchModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *MatchModeFlag) Type() string {
	return "MatchMode"
}

var (
	_ pflag.Value = (*MatchModeFlag)(nil)
)

func newExplainCommand() *cobra.Command {
	var matchMode MatchModeFlag
	command := &cobra.Command{
		Use:   "explain [text]",
		Short: "List the known idioms and slang found in text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			hits := newPhraseStore(cfg, phrase.MatchMode(matchMode)).Match(text)
			cli.RenderHits(cmd.OutOrStdout(), hits)
			return nil
		},
	}
	command.Flags().Var(&matchMode, "match-mode", "substring or word (defaults to phrases.match_mode)")
	return command
}
