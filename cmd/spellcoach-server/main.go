package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/spellcoach/spellcoach/internal/bootstrap"
	"github.com/spellcoach/spellcoach/internal/config"
	"github.com/spellcoach/spellcoach/internal/database"
	"github.com/spellcoach/spellcoach/internal/inference"
	"github.com/spellcoach/spellcoach/internal/inference/openai"
	"github.com/spellcoach/spellcoach/internal/review"
	"github.com/spellcoach/spellcoach/internal/server"
	"github.com/spellcoach/spellcoach/internal/settings"
	"github.com/spellcoach/spellcoach/internal/srs"
	"github.com/spellcoach/spellcoach/internal/study"
	"github.com/spellcoach/spellcoach/internal/word"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open(%s) > %w", cfg.Database.Path, err)
	}

	words := word.NewDBRepository(db)
	reviews := review.NewDBRepository(db)
	cards := srs.NewDBRepository(db)
	studyService := study.NewService(words, reviews, cards)
	settingsRepo := settings.NewFileRepository(cfg.Settings.Path)

	var inferenceClient inference.Client
	if cfg.OpenAI.APIKey != "" {
		openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
		defer func() {
			_ = openaiClient.Close()
		}()
		inferenceClient = openaiClient
		slog.Info("word generation enabled", "model", cfg.OpenAI.Model)
	} else {
		slog.Info("OPENAI_API_KEY not set, word generation disabled")
	}

	api := server.NewAPI(words, reviews, cards, studyService, settingsRepo, inferenceClient, cfg.Study.SessionLimit)
	handler := server.NewRouter(api, cfg.Server.CORS.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	app := bootstrap.New()
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})
	app.AddShutdownHook(func(ctx context.Context) error {
		return httpServer.Shutdown(ctx)
	})

	return app.Run(context.Background(), func(ctx context.Context) error {
		slog.Info("starting server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(os.Getenv("SPELLCOACH_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
