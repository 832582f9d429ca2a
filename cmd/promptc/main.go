// Command promptc compiles image-editing prompts from analysis files offline,
// and can run a one-off analysis against Gemini.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"postcraft/internal/http/handlers"
	"postcraft/internal/infra"
	"postcraft/internal/providers/gemini"
)

func main() {
	_ = godotenv.Load()

	cfg := infra.LoadCLIConfig()
	logger := infra.NewLoggerTo(os.Stderr, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg, logger, func(ctx context.Context) (handlers.Analyzer, error) {
		a, err := gemini.NewAnalyzer(ctx, gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.AnalysisTimeout,
			Logger:  &logger,
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	})
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("promptc failed")
		os.Exit(1)
	}
}
