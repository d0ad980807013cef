package rag

import (
	"context"
	"log/slog"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

// TopK is the number of nearest records retrieved per query. Only the
// single closest record is ever used as context.
const TopK = 1

// TextEmbedder embeds texts into fixed-dimension vectors, order-preserving.
type TextEmbedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Searcher performs top-k nearest-neighbor lookups.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int) ([]knowledge.SearchResult, error)
}

// AnswerGenerator produces a model response and records the exchange.
type AnswerGenerator interface {
	Generate(ctx context.Context, system string, history *conversation.History, prompt string) (string, error)
}

// Pipeline orchestrates embed → search → context → prompt → generate.
// Both front ends (REPL and HTTP) call the same Pipeline.
type Pipeline struct {
	embedder  TextEmbedder
	index     Searcher
	generator AnswerGenerator
	logger    *slog.Logger
}

// NewPipeline wires the pipeline components together.
func NewPipeline(embedder TextEmbedder, index Searcher, generator AnswerGenerator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		embedder:  embedder,
		index:     index,
		generator: generator,
		logger:    logger,
	}
}

// Answer runs one query through the pipeline against the given session
// history and returns the generated answer. Errors from the external calls
// propagate unmodified (ErrEmbedding, knowledge.ErrSearch, ErrGeneration);
// the front ends convert them into user-visible messages.
func (p *Pipeline) Answer(ctx context.Context, history *conversation.History, query string) (string, error) {
	vectors, err := p.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return "", err
	}

	// An empty embed result degrades to an empty vector, which the index
	// treats as "no match" rather than an error.
	var vector []float32
	if len(vectors) > 0 {
		vector = vectors[0]
	}

	results, err := p.index.Search(ctx, vector, TopK)
	if err != nil {
		return "", err
	}

	var top *knowledge.SearchResult
	if len(results) > 0 {
		top = &results[0]
	}

	contextBlock := BuildContext(top)
	prompt := BuildPrompt(query, contextBlock)

	p.logger.Debug("answering query",
		"query_length", len(query),
		"matched", top != nil,
		"history_turns", history.Len())

	return p.generator.Generate(ctx, SystemMessage, history, prompt)
}
