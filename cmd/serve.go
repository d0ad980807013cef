package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/api"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/app"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/config"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
)

// runServe starts the HTTP API server and blocks until SIGINT/SIGTERM.
func runServe(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("closing application", "error", err)
		}
	}()

	srv, err := api.NewServer(api.ServerConfig{
		Logger:   logger,
		Answerer: a.Pipeline,
		Sessions: a.Sessions,
		Index:    a.Index,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx, cfg.ServeAddr)
}
