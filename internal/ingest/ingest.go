// Package ingest builds the vector index from the relational catalog.
//
// Ingestion is an offline full refresh: read every destination row, drop and
// recreate the collection, embed the records in batches, insert, flush. Any
// failure aborts the run; the previous index is gone at that point, so the
// operator reruns the job rather than serving from a half-built collection.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

// batchSize is the number of records embedded per provider call.
const batchSize = 32

const destinationsQuery = `
SELECT id, destination, state, description, tourist_attractions, activities
FROM destinations
ORDER BY id`

// Embedder embeds record texts into vectors, order-preserving.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore receives the rebuilt index.
type VectorStore interface {
	Rebuild(ctx context.Context) error
	Insert(ctx context.Context, records []knowledge.Destination, vectors [][]float32) (int64, error)
	Flush(ctx context.Context) error
}

// Job is one ingestion run: relational catalog in, vector index out.
type Job struct {
	db       *pgxpool.Pool
	embedder Embedder
	store    VectorStore
	logger   *slog.Logger
}

// NewJob wires an ingestion job.
func NewJob(db *pgxpool.Pool, embedder Embedder, store VectorStore, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{db: db, embedder: embedder, store: store, logger: logger}
}

// Run executes the full refresh.
func (j *Job) Run(ctx context.Context) error {
	records, err := j.readDestinations(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		j.logger.Warn("destination catalog is empty, rebuilding an empty index")
	}

	return j.ingest(ctx, records)
}

// ingest rebuilds the collection and writes the given records into it.
func (j *Job) ingest(ctx context.Context, records []knowledge.Destination) error {
	if err := j.store.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	var total int64
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		batch := records[start:end]

		texts := make([]string, len(batch))
		for i, r := range batch {
			texts[i] = r.CombinedText()
		}

		vectors, err := j.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedding batch at %d: got %d vectors for %d records", start, len(vectors), len(batch))
		}

		count, err := j.store.Insert(ctx, batch, vectors)
		if err != nil {
			return fmt.Errorf("inserting batch at %d: %w", start, err)
		}
		total += count

		j.logger.Debug("batch ingested", "offset", start, "size", len(batch))
	}

	if err := j.store.Flush(ctx); err != nil {
		return fmt.Errorf("flushing index: %w", err)
	}

	j.logger.Info("ingestion complete", "records", total)
	return nil
}

// readDestinations loads the full destination catalog, ordered by ID.
func (j *Job) readDestinations(ctx context.Context) ([]knowledge.Destination, error) {
	rows, err := j.db.Query(ctx, destinationsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying destinations: %w", err)
	}
	defer rows.Close()

	var records []knowledge.Destination
	for rows.Next() {
		var d knowledge.Destination
		if err := rows.Scan(&d.ID, &d.Destination, &d.State, &d.Description, &d.TouristAttractions, &d.Activities); err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}
		records = append(records, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading destinations: %w", err)
	}

	return records, nil
}
