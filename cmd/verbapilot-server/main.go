package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/verbapilot/internal/bootstrap"
	"github.com/at-ishikawa/verbapilot/internal/config"
	"github.com/at-ishikawa/verbapilot/internal/database"
	"github.com/at-ishikawa/verbapilot/internal/history"
	"github.com/at-ishikawa/verbapilot/internal/language"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
	"github.com/at-ishikawa/verbapilot/internal/quiz"
	"github.com/at-ishikawa/verbapilot/internal/server"
	"github.com/at-ishikawa/verbapilot/internal/translator"
	"github.com/at-ishikawa/verbapilot/internal/translator/azure"
)

var configFile string

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "verbapilot-server",
		Short:         "VerbaPilot translation and challenge HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})))
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig > %w", err)
	}

	repo, err := newHistoryRepository(ctx, app, cfg)
	if err != nil {
		return fmt.Errorf("newHistoryRepository > %w", err)
	}

	store := phrase.NewStore(cfg.Phrases.IdiomsFile, cfg.Phrases.SlangFile, phrase.MatchMode(cfg.Phrases.MatchMode))
	handler, err := server.NewHandler(ctx,
		newTranslator(cfg),
		store,
		language.NewCatalog(cfg.Languages.URL, cfg.Languages.CacheDirectory),
		repo,
		server.ChallengeOptions{
			Pool:           quiz.LoadPool(cfg.Challenge.PhrasesFile),
			Items:          cfg.Challenge.Items,
			SourceLanguage: cfg.Challenge.SourceLanguage,
		},
	)
	if err != nil {
		return fmt.Errorf("server.NewHandler > %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newHTTPHandler(handler, cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			slog.Default().Info("starting server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		if cfg.Phrases.Watch {
			g.Go(func() error {
				return phrase.NewWatcher(store).Run(ctx)
			})
		}
		return g.Wait()
	})
}

func newHTTPHandler(handler *server.Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         3600,
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	path, h := handler.Routes()
	r.Mount(path, h)

	return h2c.NewHandler(r, &http2.Server{})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader > %w", err)
	}
	return loader.Load()
}

// newTranslator returns nil when credentials are missing; translation
// procedures then answer Unavailable while the rest of the service works.
func newTranslator(cfg *config.Config) translator.Client {
	client, err := azure.NewClient(azure.Config{
		Endpoint:         cfg.Translator.Azure.Endpoint,
		Key:              cfg.Translator.Azure.Key,
		Region:           cfg.Translator.Azure.Region,
		MaxRetryAttempts: cfg.Translator.Azure.MaxRetryAttempts,
		Timeout:          time.Duration(cfg.Translator.Azure.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		slog.Default().Warn("translator disabled", "error", err)
		return nil
	}
	return client
}

func newHistoryRepository(ctx context.Context, app *bootstrap.App, cfg *config.Config) (history.Repository, error) {
	switch cfg.History.Backend {
	case "yaml":
		return history.NewYAMLRepository(cfg.History.File), nil
	case "database":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		app.AddShutdownHook(func(context.Context) error {
			return db.Close()
		})
		return history.NewDBRepository(db), nil
	default:
		return history.NopRepository{}, nil
	}
}
