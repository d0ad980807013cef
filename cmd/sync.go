package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/app"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/config"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
)

// runSync rebuilds the vector index from the destination catalog. The run is
// a full refresh; any failure aborts it and the job must be rerun.
func runSync(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.ValidateIngest(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.SetupIngest(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("closing application", "error", err)
		}
	}()

	if err := a.Ingest.Run(ctx); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Println("Vector index rebuilt.")
	return nil
}
