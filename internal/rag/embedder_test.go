package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
)

// mockEmbedder implements ai.Embedder, echoing one small vector per input
// and capturing the request for inspection.
type mockEmbedder struct {
	gotRequest *ai.EmbedRequest
	err        error
	short      bool
}

func (m *mockEmbedder) Name() string { return "mock-embedder" }

func (m *mockEmbedder) Register(_ api.Registry) {}

func (m *mockEmbedder) Embed(_ context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	m.gotRequest = req
	if m.err != nil {
		return nil, m.err
	}

	n := len(req.Input)
	if m.short {
		n = 0
	}
	embeddings := make([]*ai.Embedding, n)
	for i := range embeddings {
		embeddings[i] = &ai.Embedding{Embedding: []float32{float32(i), float32(i + 1)}}
	}
	return &ai.EmbedResponse{Embeddings: embeddings}, nil
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	t.Parallel()

	mock := &mockEmbedder{}
	e := NewEmbedder(mock)

	vectors, err := e.EmbedTexts(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0, 1}, vectors[0])
	assert.Equal(t, []float32{1, 2}, vectors[1])

	require.NotNil(t, mock.gotRequest)
	require.Len(t, mock.gotRequest.Input, 2)
	assert.Equal(t, "first", mock.gotRequest.Input[0].Content[0].Text)

	opts, ok := mock.gotRequest.Options.(*genai.EmbedContentConfig)
	require.True(t, ok, "options must be a Gemini embed config")
	assert.Equal(t, taskTypeRetrievalDocument, opts.TaskType)
	require.NotNil(t, opts.OutputDimensionality)
	assert.Equal(t, int32(knowledge.VectorDimension), *opts.OutputDimensionality)
}

func TestEmbedder_EmbedTexts_Empty(t *testing.T) {
	t.Parallel()

	mock := &mockEmbedder{}
	e := NewEmbedder(mock)

	vectors, err := e.EmbedTexts(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, vectors)
	assert.Nil(t, mock.gotRequest, "no provider call for empty input")
}

func TestEmbedder_EmbedTexts_ProviderError(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("rate limited")
	e := NewEmbedder(&mockEmbedder{err: providerErr})

	_, err := e.EmbedTexts(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.ErrorIs(t, err, providerErr)
}

func TestEmbedder_EmbedTexts_CountMismatch(t *testing.T) {
	t.Parallel()

	e := NewEmbedder(&mockEmbedder{short: true})

	_, err := e.EmbedTexts(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbedding)
}
