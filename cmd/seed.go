package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/app"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/config"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/ingest"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
)

// runSeed loads the destination dataset CSV into the relational catalog,
// replacing its current contents.
func runSeed(logger log.Logger, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: tourism seed <file.csv>")
	}
	path := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.ValidateIngest(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ingest.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.SetupSeed(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("closing application", "error", err)
		}
	}()

	if err := ingest.Seed(ctx, a.DBPool, records, logger); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	fmt.Printf("Loaded %d destinations from %s.\n", len(records), path)
	return nil
}
