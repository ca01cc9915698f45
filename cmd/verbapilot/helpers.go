package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/verbapilot/internal/config"
	"github.com/at-ishikawa/verbapilot/internal/database"
	"github.com/at-ishikawa/verbapilot/internal/history"
	"github.com/at-ishikawa/verbapilot/internal/language"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
	"github.com/at-ishikawa/verbapilot/internal/translator"
	"github.com/at-ishikawa/verbapilot/internal/translator/azure"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config > %w", err)
	}
	return cfg, nil
}

func newTranslator(cfg *config.Config) (translator.Client, error) {
	client, err := azure.NewClient(azure.Config{
		Endpoint:         cfg.Translator.Azure.Endpoint,
		Key:              cfg.Translator.Azure.Key,
		Region:           cfg.Translator.Azure.Region,
		MaxRetryAttempts: cfg.Translator.Azure.MaxRetryAttempts,
		Timeout:          time.Duration(cfg.Translator.Azure.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, providerError(err)
	}
	return client, nil
}

// providerError logs the cause and returns the message users see.
func providerError(err error) error {
	slog.Default().Debug("translator failure", "error", err)
	return errors.New(translator.UserMessage(err))
}

// languageIndex returns nil when the language list cannot be fetched.
func languageIndex(ctx context.Context, cfg *config.Config) *language.Index {
	languages, err := language.NewCatalog(cfg.Languages.URL, cfg.Languages.CacheDirectory).List(ctx)
	if err != nil {
		slog.Default().Warn("language list unavailable, passing codes through", "error", err)
		return nil
	}
	return language.NewIndex(languages)
}

func resolveTarget(index *language.Index, input string) (language.Language, error) {
	if index == nil {
		code := strings.TrimSpace(input)
		return language.Language{Code: code, Name: code}, nil
	}
	return index.Resolve(input)
}

func resolveSource(index *language.Index, input string) (string, error) {
	if index == nil {
		if translator.IsAutoDetect(input) {
			return translator.AutoDetect, nil
		}
		return strings.TrimSpace(input), nil
	}
	return index.ResolveSource(input)
}

// newPhraseStore uses mode when set and the configured match mode otherwise.
func newPhraseStore(cfg *config.Config, mode phrase.MatchMode) *phrase.Store {
	if mode == "" {
		mode = phrase.MatchMode(cfg.Phrases.MatchMode)
	}
	return phrase.NewStore(cfg.Phrases.IdiomsFile, cfg.Phrases.SlangFile, mode)
}

// newHistoryRepository returns the configured repository and a function releasing it.
func newHistoryRepository(ctx context.Context, cfg *config.Config) (history.Repository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.History.Backend {
	case "yaml":
		return history.NewYAMLRepository(cfg.History.File), noop, nil
	case "database":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return history.NewDBRepository(db), db.Close, nil
	default:
		return history.NopRepository{}, noop, nil
	}
}

// readText joins args, or reads standard input when there are none.
func readText(cmd *cobra.Command, args []string) (string, error) {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("io.ReadAll > %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("text is required, pass it as arguments or on standard input")
	}
	return text, nil
}
