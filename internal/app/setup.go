package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swuzz123/Tourism-chatbot-demo/db"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/config"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/ingest"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/rag"
)

const dbConnectTimeout = 10 * time.Second

// Setup initializes the serving path: Genkit, the loaded vector index, and
// the retrieval pipeline. A missing or unloadable collection is fatal here;
// the operator runs the sync job first.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(ctx); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	g, err := provideGenkit(ctx)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder, err := provideEmbedder(g, cfg)
	if err != nil {
		return nil, err
	}
	a.Embedder = embedder

	index, err := provideIndex(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Index = index

	if err := index.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading vector index: %w", err)
	}

	generator := rag.NewGeminiGenerator(g, "googleai/"+cfg.ModelName)
	a.Pipeline = rag.NewPipeline(embedder, index, generator, logger)
	a.Sessions = conversation.NewStore()

	logger.Info("application ready",
		"model", cfg.ModelName,
		"embedder", cfg.EmbedderModel,
		"collection", cfg.Collection)

	return a, nil
}

// SetupIngest initializes the sync job: Genkit for embeddings, the vector
// store for writing, and the relational catalog as the source. Migrations
// run before the pool is handed out.
func SetupIngest(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(ctx); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	g, err := provideGenkit(ctx)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder, err := provideEmbedder(g, cfg)
	if err != nil {
		return nil, err
	}
	a.Embedder = embedder

	index, err := provideIndex(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Index = index

	pool, err := provideDBPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	a.Ingest = ingest.NewJob(pool, embedder, index, logger)

	return a, nil
}

// SetupSeed initializes only the relational catalog, for loading the CSV
// dataset. No Genkit or Milvus connection is made.
func SetupSeed(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	pool, err := provideDBPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	return a, nil
}

// provideGenkit initializes Genkit with the Google AI plugin. The plugin
// reads GEMINI_API_KEY from the environment.
func provideGenkit(ctx context.Context) (*genkit.Genkit, error) {
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with gemini provider")
	}
	return g, nil
}

// provideEmbedder resolves the configured Gemini embedding model.
func provideEmbedder(g *genkit.Genkit, cfg *config.Config) (*rag.Embedder, error) {
	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}
	return rag.NewEmbedder(embedder), nil
}

// provideIndex connects to Milvus.
func provideIndex(ctx context.Context, cfg *config.Config, logger log.Logger) (*knowledge.Store, error) {
	store, err := knowledge.Connect(ctx, knowledge.Config{
		Address:    cfg.MilvusAddr(),
		Collection: cfg.Collection,
		NList:      cfg.IndexNList,
		NProbe:     cfg.SearchNProbe,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to vector index: %w", err)
	}
	return store, nil
}

// provideDBPool runs migrations and opens the PostgreSQL connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config, logger log.Logger) (*pgxpool.Pool, error) {
	connURL := cfg.PostgresURL()

	if err := db.Migrate(connURL, logger); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCtx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(poolCtx, connURL)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(poolCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Debug("database pool ready",
		"host", cfg.PostgresHost,
		"database", cfg.PostgresDBName)

	return pool, nil
}
