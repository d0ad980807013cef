package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"google.golang.org/genai"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

// taskTypeRetrievalDocument is the Gemini embedding task type. The same
// task type is used for stored documents and for queries, matching how the
// index was built.
const taskTypeRetrievalDocument = "RETRIEVAL_DOCUMENT"

const embedTimeout = 30 * time.Second

// Embedder turns text into fixed-dimension vectors using a Genkit embedder.
type Embedder struct {
	embedder ai.Embedder
}

// NewEmbedder wraps a Genkit ai.Embedder.
func NewEmbedder(embedder ai.Embedder) *Embedder {
	return &Embedder{embedder: embedder}
}

// EmbedTexts embeds texts in order, one vector per input, each of dimension
// knowledge.VectorDimension. Provider failures are reported as ErrEmbedding.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	docs := make([]*ai.Document, len(texts))
	for i, t := range texts {
		docs[i] = ai.DocumentFromText(t, nil)
	}

	dim := int32(knowledge.VectorDimension)
	resp, err := e.embedder.Embed(embedCtx, &ai.EmbedRequest{
		Input: docs,
		Options: &genai.EmbedContentConfig{
			TaskType:             taskTypeRetrievalDocument,
			OutputDimensionality: &dim,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbedding, len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Embedding
	}
	return vectors, nil
}
