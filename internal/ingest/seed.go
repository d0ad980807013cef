package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

// CSV header names of the destination dataset.
const (
	columnDestination        = "Destination"
	columnState              = "State"
	columnDescription        = "Description"
	columnTouristAttractions = "Tourist Attractions"
	columnActivities         = "Activities"
)

// ParseCSV reads the destination dataset. The first row must be a header
// containing the five expected columns; extra columns are ignored and column
// order does not matter. IDs are left unset, the database assigns them.
func ParseCSV(r io.Reader) ([]knowledge.Destination, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{columnDestination, columnState, columnDescription, columnTouristAttractions, columnActivities} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV is missing column %q", required)
		}
	}

	var records []knowledge.Destination
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		records = append(records, knowledge.Destination{
			Destination:        row[cols[columnDestination]],
			State:              row[cols[columnState]],
			Description:        row[cols[columnDescription]],
			TouristAttractions: row[cols[columnTouristAttractions]],
			Activities:         row[cols[columnActivities]],
		})
	}

	return records, nil
}

// Seed replaces the destinations table with the given records. Like index
// ingestion, seeding is a full refresh: the table is truncated and repopulated
// in one transaction, so a failed run leaves the previous catalog intact.
func Seed(ctx context.Context, db *pgxpool.Pool, records []knowledge.Destination, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "TRUNCATE destinations RESTART IDENTITY"); err != nil {
		return fmt.Errorf("truncating destinations: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(
			`INSERT INTO destinations (destination, state, description, tourist_attractions, activities)
			 VALUES ($1, $2, $3, $4, $5)`,
			r.Destination, r.State, r.Description, r.TouristAttractions, r.Activities,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("inserting destination %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("closing seed batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	logger.Info("catalog seeded", "records", len(records))
	return nil
}
