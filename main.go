package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/joho/godotenv"

	"github.com/dskvich/game-analyst/pkg/api"
	"github.com/dskvich/game-analyst/pkg/api/handler"
	"github.com/dskvich/game-analyst/pkg/conversation"
	"github.com/dskvich/game-analyst/pkg/logger"
	"github.com/dskvich/game-analyst/pkg/openai"
	"github.com/dskvich/game-analyst/pkg/relay"
	"github.com/dskvich/game-analyst/pkg/repository"
	"github.com/dskvich/game-analyst/pkg/service"
)

const (
	modeRelay  = "relay"
	modeDirect = "direct"
)

type Config struct {
	HTTPAddr             string        `env:"HTTP_ADDR" envDefault:":8080"`
	OpenAIAPIKey         string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel          string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	CompletionMode       string        `env:"COMPLETION_MODE" envDefault:"relay"`
	RelayURL             string        `env:"RELAY_URL" envDefault:"http://localhost:8080/api/chat-gpt"`
	CompletionTimeout    time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"60s"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	CORSAllowedOrigins   string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	UploadLimitBytes     int64         `env:"UPLOAD_LIMIT_BYTES" envDefault:"10485760"`
	LogNoColor           bool          `env:"LOG_NO_COLOR"`
}

func main() {
	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := *logger.DefaultOptions
	opts.NoColor = cfg.LogNoColor
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &opts)))

	group, err := setupServices(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return group.Run(ctx)
}

func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}

	if cfg.CompletionMode != modeRelay && cfg.CompletionMode != modeDirect {
		return Config{}, fmt.Errorf("unsupported COMPLETION_MODE %q", cfg.CompletionMode)
	}
	if cfg.CompletionTimeout <= 0 {
		return Config{}, fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", cfg.CompletionTimeout)
	}

	return cfg, nil
}

func setupServices(cfg Config) (service.Group, error) {
	httpClient := cleanhttp.DefaultPooledClient()

	openAIClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIModel, httpClient)

	var sessionClient conversation.CompletionClient
	switch cfg.CompletionMode {
	case modeDirect:
		sessionClient = openAIClient
	default:
		sessionClient = relay.NewClient(cfg.RelayURL, httpClient)
	}
	slog.Info("Completion client configured", "mode", cfg.CompletionMode, "model", cfg.OpenAIModel)

	sessionRepository := repository.NewSessionRepository(cfg.SessionTTL)

	app := api.NewApp(
		api.Config{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			BodyLimit:      int(cfg.UploadLimitBytes) + 64*1024,
		},
		handler.NewRelay(openAIClient, cfg.OpenAIAPIKey),
		handler.NewSessions(
			sessionRepository,
			func() *conversation.Controller {
				return conversation.NewController(sessionClient, cfg.CompletionTimeout)
			},
			cfg.UploadLimitBytes,
		),
		handler.NewGames(),
	)

	return service.Group{
		service.NewHTTPServer(app, cfg.HTTPAddr),
		service.NewSessionSweeper(sessionRepository, cfg.SessionSweepInterval),
	}, nil
}
