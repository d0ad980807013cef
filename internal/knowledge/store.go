// Package knowledge provides the Milvus-backed vector index of travel
// destinations.
//
// The serving path only searches; writes happen through the ingestion job,
// which performs a full refresh (drop, recreate, bulk insert) rather than
// patching individual rows. The collection must exist and be loaded before
// Search is called; Load enforces that precondition at startup.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
)

var (
	// ErrCollectionNotFound indicates the collection does not exist yet.
	// Run the sync job before serving.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrSearch indicates a similarity query failed.
	ErrSearch = errors.New("vector search failed")
)

const (
	connectTimeout = 10 * time.Second
	searchTimeout  = 10 * time.Second
)

// Config holds the store settings.
type Config struct {
	// Address is the host:port of the Milvus server.
	Address string

	// Collection is the collection name (default tourism_search).
	Collection string

	// NList is the IVF_FLAT partition count used when building the index.
	NList int

	// NProbe is the number of partitions probed per search.
	NProbe int
}

// Store is the vector index of travel destinations.
//
// Store is safe for concurrent use; all state lives in Milvus.
type Store struct {
	client     *milvusclient.Client
	collection string
	nlist      int
	nprobe     int
	logger     *slog.Logger
}

// Connect dials the Milvus server and returns a Store.
// Connection failures at startup are fatal by design: the caller aborts
// rather than serving without an index.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := milvusclient.New(dialCtx, &milvusclient.ClientConfig{Address: cfg.Address})
	if err != nil {
		return nil, fmt.Errorf("connecting to Milvus at %s: %w", cfg.Address, err)
	}

	logger.Info("connected to Milvus", "address", cfg.Address, "collection", cfg.Collection)

	return &Store{
		client:     client,
		collection: cfg.Collection,
		nlist:      cfg.NList,
		nprobe:     cfg.NProbe,
		logger:     logger,
	}, nil
}

// Close releases the Milvus connection.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Close(ctx); err != nil {
		return fmt.Errorf("closing Milvus client: %w", err)
	}
	return nil
}

// Ping reports whether the index is reachable. Used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(s.collection)); err != nil {
		return fmt.Errorf("pinging Milvus: %w", err)
	}
	return nil
}

// Load verifies the collection exists and loads it into memory.
// Serving requires a successful Load; a missing collection is reported as
// ErrCollectionNotFound so startup can fail with a clear message.
func (s *Store) Load(ctx context.Context) error {
	has, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", s.collection, err)
	}
	if !has {
		return fmt.Errorf("%w: %q (run the sync job first)", ErrCollectionNotFound, s.collection)
	}

	task, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("loading collection %q: %w", s.collection, err)
	}
	if err := task.Await(ctx); err != nil {
		return fmt.Errorf("awaiting collection load: %w", err)
	}

	s.logger.Debug("collection loaded", "collection", s.collection)
	return nil
}

// Rebuild drops the collection if present and recreates it empty, with the
// fixed schema, an IVF_FLAT/L2 index on the embedding field, and the
// collection loaded. Ingestion is a full refresh, never an incremental patch.
func (s *Store) Rebuild(ctx context.Context) error {
	has, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", s.collection, err)
	}
	if has {
		if err := s.client.DropCollection(ctx, milvusclient.NewDropCollectionOption(s.collection)); err != nil {
			return fmt.Errorf("dropping collection %q: %w", s.collection, err)
		}
		s.logger.Info("dropped existing collection", "collection", s.collection)
	}

	schema := entity.NewSchema().
		WithName(s.collection).
		WithDescription("Travel destinations").
		WithField(entity.NewField().WithName(FieldID).WithDataType(entity.FieldTypeInt64).WithIsPrimaryKey(true)).
		WithField(entity.NewField().WithName(FieldDestination).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxTextLength)).
		WithField(entity.NewField().WithName(FieldState).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxTextLength)).
		WithField(entity.NewField().WithName(FieldDescription).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxTextLength)).
		WithField(entity.NewField().WithName(FieldTouristAttractions).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxTextLength)).
		WithField(entity.NewField().WithName(FieldActivities).WithDataType(entity.FieldTypeVarChar).WithMaxLength(maxActivitiesLength)).
		WithField(entity.NewField().WithName(FieldEmbedding).WithDataType(entity.FieldTypeFloatVector).WithDim(VectorDimension))

	if err := s.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(s.collection, schema)); err != nil {
		return fmt.Errorf("creating collection %q: %w", s.collection, err)
	}

	idx := index.NewIvfFlatIndex(entity.L2, s.nlist)
	idxTask, err := s.client.CreateIndex(ctx, milvusclient.NewCreateIndexOption(s.collection, FieldEmbedding, idx))
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	if err := idxTask.Await(ctx); err != nil {
		return fmt.Errorf("awaiting index build: %w", err)
	}

	loadTask, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("loading collection %q: %w", s.collection, err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return fmt.Errorf("awaiting collection load: %w", err)
	}

	s.logger.Info("collection rebuilt", "collection", s.collection, "nlist", s.nlist)
	return nil
}

// Insert writes destination records with their embeddings and returns the
// inserted count. Vectors must align one-to-one with records and have
// dimension VectorDimension.
func (s *Store) Insert(ctx context.Context, records []Destination, vectors [][]float32) (int64, error) {
	if len(records) != len(vectors) {
		return 0, fmt.Errorf("record/vector count mismatch: %d != %d", len(records), len(vectors))
	}
	if len(records) == 0 {
		return 0, nil
	}

	ids := make([]int64, len(records))
	dests := make([]string, len(records))
	states := make([]string, len(records))
	descs := make([]string, len(records))
	attractions := make([]string, len(records))
	activities := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
		dests[i] = r.Destination
		states[i] = r.State
		descs[i] = r.Description
		attractions[i] = r.TouristAttractions
		activities[i] = r.Activities
	}

	result, err := s.client.Insert(ctx, milvusclient.NewColumnBasedInsertOption(s.collection).
		WithInt64Column(FieldID, ids).
		WithVarcharColumn(FieldDestination, dests).
		WithVarcharColumn(FieldState, states).
		WithVarcharColumn(FieldDescription, descs).
		WithVarcharColumn(FieldTouristAttractions, attractions).
		WithVarcharColumn(FieldActivities, activities).
		WithFloatVectorColumn(FieldEmbedding, VectorDimension, vectors))
	if err != nil {
		return 0, fmt.Errorf("inserting %d records: %w", len(records), err)
	}

	return result.InsertCount, nil
}

// Flush persists pending inserts.
func (s *Store) Flush(ctx context.Context) error {
	task, err := s.client.Flush(ctx, milvusclient.NewFlushOption(s.collection))
	if err != nil {
		return fmt.Errorf("flushing collection %q: %w", s.collection, err)
	}
	if err := task.Await(ctx); err != nil {
		return fmt.Errorf("awaiting flush: %w", err)
	}
	return nil
}

// Search returns up to topK destinations ordered by ascending L2 distance
// from the query vector. An empty query vector or an empty collection yields
// an empty result without error; RPC failures are reported as ErrSearch.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	if len(vector) == 0 {
		// Degenerate query (e.g. the embedder returned nothing): no match.
		s.logger.Debug("empty query vector, skipping search")
		return nil, nil
	}

	searchCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	opt := milvusclient.NewSearchOption(s.collection, topK, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField(FieldEmbedding).
		WithOutputFields(FieldDestination, FieldState, FieldDescription, FieldTouristAttractions, FieldActivities).
		WithAnnParam(index.NewIvfAnnParam(s.nprobe))

	resultSets, err := s.client.Search(searchCtx, opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	if len(resultSets) == 0 {
		return nil, nil
	}

	rs := resultSets[0]
	results := make([]SearchResult, 0, rs.ResultCount)
	for i := 0; i < rs.ResultCount; i++ {
		rec, err := s.resultAt(rs, i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSearch, err)
		}
		results = append(results, rec)
	}

	return results, nil
}

// resultAt maps row i of a Milvus result set to a SearchResult.
func (s *Store) resultAt(rs milvusclient.ResultSet, i int) (SearchResult, error) {
	var out SearchResult

	id, err := rs.IDs.GetAsInt64(i)
	if err != nil {
		return out, fmt.Errorf("reading ID at %d: %w", i, err)
	}
	out.ID = id
	out.Distance = rs.Scores[i]

	for field, dst := range map[string]*string{
		FieldDestination:        &out.Destination.Destination,
		FieldState:              &out.State,
		FieldDescription:        &out.Description,
		FieldTouristAttractions: &out.TouristAttractions,
		FieldActivities:         &out.Activities,
	} {
		col := rs.GetColumn(field)
		if col == nil {
			return out, fmt.Errorf("missing output field %q", field)
		}
		v, err := col.GetAsString(i)
		if err != nil {
			return out, fmt.Errorf("reading %s at %d: %w", field, i, err)
		}
		*dst = v
	}

	return out, nil
}
