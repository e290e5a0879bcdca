// @title         legalassist API
// @version       1.0
// @description   Relay that forwards legal questions to a hosted language model and returns general legal information.
// @BasePath      /api
// @schemes       http
// @host          localhost:5000
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/artem13815/legalassist/docs"

	// internal imports
	"github.com/artem13815/legalassist/api/http"
	"github.com/artem13815/legalassist/api/http/handlers"
	"github.com/artem13815/legalassist/pkg/assistant"
	"github.com/artem13815/legalassist/pkg/config"
	"github.com/artem13815/legalassist/pkg/health"
	healthpg "github.com/artem13815/legalassist/pkg/health/checkers"
	"github.com/artem13815/legalassist/pkg/inquiry"
	"github.com/artem13815/legalassist/pkg/llm"
	"github.com/artem13815/legalassist/pkg/llm/gemini"
	"github.com/artem13815/legalassist/pkg/llm/openrouter"
	"github.com/artem13815/legalassist/pkg/logging"
	pgrepo "github.com/artem13815/legalassist/pkg/repository/postgres"
	"github.com/artem13815/legalassist/pkg/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from env/.env and optional YAML file
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init %s backend: %w", cfg.LLMProvider, err)
	}

	// Inquiry log is optional; without DATABASE_URL nothing is stored.
	var recorder inquiry.Recorder = inquiry.Nop{}
	var checkers []health.Checker
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pool.Close()
		repo, err := pgrepo.NewInquiryRepository(pool)
		if err != nil {
			return fmt.Errorf("init inquiry repo: %w", err)
		}
		recorder = repo
		checkers = append(checkers, healthpg.NewPostgresChecker(pool))
	} else {
		logger.Info("DATABASE_URL not set, inquiry log disabled")
	}

	svc := assistant.NewService(gen, recorder, cfg.UpstreamTimeout, logger)

	app := http.NewApp(logger, cfg.CORSOrigins)
	http.Register(app,
		handlers.NewAssistantHandler(svc),
		handlers.NewHealthHandler(health.NewService(checkers...)),
	)
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening",
			zap.String("port", cfg.Port),
			zap.String("provider", cfg.LLMProvider),
			zap.String("model", gen.Model()))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newGenerator(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		return openrouter.New(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBase,
			cfg.OpenRouterModel,
			cfg.OpenRouterAppTitle,
			cfg.OpenRouterReferer,
		), nil
	default:
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	}
}
