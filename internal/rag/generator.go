package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
)

const generateTimeout = 60 * time.Second

// GenerateFunc performs one text-completion call: full request text in,
// generated text out.
type GenerateFunc func(ctx context.Context, request string) (string, error)

// Generator calls the generation model with the system message, the
// session's conversation history, and the new prompt, then records the
// completed exchange in history.
//
// History updates are atomic: nothing is appended until the model call
// succeeds, so a failed request leaves the history exactly as it was.
type Generator struct {
	generate GenerateFunc
}

// NewGenerator creates a Generator around a completion function.
// Tests inject a fake; production uses NewGeminiGenerator.
func NewGenerator(fn GenerateFunc) *Generator {
	return &Generator{generate: fn}
}

// NewGeminiGenerator creates a Generator backed by a Genkit model.
// modelName is the provider-qualified name, e.g. "googleai/gemini-1.5-flash".
func NewGeminiGenerator(g *genkit.Genkit, modelName string) *Generator {
	return NewGenerator(func(ctx context.Context, request string) (string, error) {
		resp, err := genkit.Generate(ctx, g,
			ai.WithModelName(modelName),
			ai.WithPrompt(request),
		)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	})
}

// Generate runs one completion. The request text is the system message, a
// blank line, the windowed history turns (including the new user turn)
// joined by newlines, and a trailing "Assistant:" marker. The response is
// whitespace-trimmed. On success the user/assistant exchange is appended to
// history; on failure history is untouched and ErrGeneration is returned.
func (gen *Generator) Generate(ctx context.Context, system string, history *conversation.History, prompt string) (string, error) {
	userTurn := conversation.Turn{Role: conversation.RoleUser, Text: prompt}

	window := append(history.Snapshot(), userTurn)
	if len(window) > conversation.MaxTurns {
		window = window[len(window)-conversation.MaxTurns:]
	}

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	raw, err := gen.generate(genCtx, buildRequest(system, window))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	text := strings.TrimSpace(raw)
	history.AppendExchange(userTurn, conversation.Turn{Role: conversation.RoleAssistant, Text: text})
	return text, nil
}

// buildRequest assembles the full request text sent to the model.
func buildRequest(system string, turns []conversation.Turn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = t.String()
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\nAssistant:")
	return sb.String()
}
