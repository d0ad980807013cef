// Package app wires the application's components together.
//
// Each command calls the Setup variant matching its needs: Setup for the
// serving paths (REPL and HTTP), SetupIngest for the index sync job, and
// SetupSeed for catalog seeding. All variants return an App whose Close
// releases every resource that was initialized.
package app

import (
	"context"
	"errors"

	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/config"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/ingest"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/rag"
)

// App holds the initialized application components. Fields are nil when the
// Setup variant that produced the App did not need them.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit   *genkit.Genkit
	Embedder *rag.Embedder

	Index    *knowledge.Store
	Pipeline *rag.Pipeline
	Sessions *conversation.Store

	DBPool *pgxpool.Pool
	Ingest *ingest.Job
}

// Close releases all initialized resources. Safe to call on a partially
// initialized App.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.Index != nil {
		if err := a.Index.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		a.Index = nil
	}

	if a.DBPool != nil {
		a.DBPool.Close()
		a.DBPool = nil
	}

	return errors.Join(errs...)
}
