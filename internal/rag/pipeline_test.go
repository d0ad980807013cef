package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/knowledge"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
)

type fakeEmbedder struct {
	vectors [][]float32
	err     error
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

type fakeSearcher struct {
	results   []knowledge.SearchResult
	err       error
	gotVector []float32
	gotTopK   int
}

func (f *fakeSearcher) Search(_ context.Context, vector []float32, topK int) ([]knowledge.SearchResult, error) {
	f.gotVector = vector
	f.gotTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeGenerator struct {
	answer    string
	err       error
	gotSystem string
	gotPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, system string, _ *conversation.History, prompt string) (string, error) {
	f.gotSystem = system
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestPipeline_Answer(t *testing.T) {
	t.Parallel()

	embedder := &fakeEmbedder{vectors: [][]float32{{0.1, 0.2, 0.3}}}
	searcher := &fakeSearcher{results: []knowledge.SearchResult{
		{
			Destination: knowledge.Destination{
				ID:                 1,
				Destination:        "Goa Beaches",
				State:              "Goa",
				Description:        "Golden sand",
				TouristAttractions: "Baga Beach",
				Activities:         "Swimming",
			},
			Distance: 0.1,
		},
		{
			Destination: knowledge.Destination{Destination: "Manali"},
			Distance:    0.9,
		},
	}}
	generator := &fakeGenerator{answer: "Goa is lovely."}

	p := NewPipeline(embedder, searcher, generator, log.NewNop())
	answer, err := p.Answer(context.Background(), &conversation.History{}, "beaches?")

	require.NoError(t, err)
	assert.Equal(t, "Goa is lovely.", answer)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, searcher.gotVector)
	assert.Equal(t, TopK, searcher.gotTopK)
	assert.Equal(t, SystemMessage, generator.gotSystem)

	// Only the closest match becomes context.
	assert.Contains(t, generator.gotPrompt, "Destination: Goa Beaches")
	assert.NotContains(t, generator.gotPrompt, "Manali")
	assert.Contains(t, generator.gotPrompt, "Query: beaches?")
}

func TestPipeline_Answer_NoMatch(t *testing.T) {
	t.Parallel()

	embedder := &fakeEmbedder{vectors: [][]float32{{0.5}}}
	searcher := &fakeSearcher{results: nil}
	generator := &fakeGenerator{answer: "I don't know that one."}

	p := NewPipeline(embedder, searcher, generator, log.NewNop())
	answer, err := p.Answer(context.Background(), &conversation.History{}, "moon tourism")

	require.NoError(t, err)
	assert.Equal(t, "I don't know that one.", answer)
	assert.Contains(t, generator.gotPrompt, NoMatchContext)
}

func TestPipeline_Answer_EmptyEmbedding(t *testing.T) {
	t.Parallel()

	embedder := &fakeEmbedder{vectors: nil}
	searcher := &fakeSearcher{results: nil}
	generator := &fakeGenerator{answer: "ok"}

	p := NewPipeline(embedder, searcher, generator, log.NewNop())
	_, err := p.Answer(context.Background(), &conversation.History{}, "")

	require.NoError(t, err)
	assert.Nil(t, searcher.gotVector)
	assert.Contains(t, generator.gotPrompt, NoMatchContext)
}

func TestPipeline_Answer_ErrorPropagation(t *testing.T) {
	t.Parallel()

	embedErr := errors.New("quota exceeded")
	searchErr := errors.New("index offline")
	genErr := errors.New("model down")

	tests := []struct {
		name      string
		embedder  *fakeEmbedder
		searcher  *fakeSearcher
		generator *fakeGenerator
		wantErr   error
	}{
		{
			name:      "embedding failure",
			embedder:  &fakeEmbedder{err: embedErr},
			searcher:  &fakeSearcher{},
			generator: &fakeGenerator{},
			wantErr:   embedErr,
		},
		{
			name:      "search failure",
			embedder:  &fakeEmbedder{vectors: [][]float32{{1}}},
			searcher:  &fakeSearcher{err: searchErr},
			generator: &fakeGenerator{},
			wantErr:   searchErr,
		},
		{
			name:      "generation failure",
			embedder:  &fakeEmbedder{vectors: [][]float32{{1}}},
			searcher:  &fakeSearcher{},
			generator: &fakeGenerator{err: genErr},
			wantErr:   genErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPipeline(tt.embedder, tt.searcher, tt.generator, log.NewNop())
			_, err := p.Answer(context.Background(), &conversation.History{}, "q")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
