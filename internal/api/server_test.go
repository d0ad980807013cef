package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
)

func newTestServer(t *testing.T, answerer Answerer) *Server {
	t.Helper()

	srv, err := NewServer(ServerConfig{
		Logger:   log.NewNop(),
		Answerer: answerer,
		Sessions: conversation.NewStore(),
		Index:    &stubPinger{},
	})
	require.NoError(t, err)
	return srv
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewServer(ServerConfig{Sessions: conversation.NewStore()})
	assert.Error(t, err, "missing answerer")

	_, err = NewServer(ServerConfig{Answerer: &stubAnswerer{}})
	assert.Error(t, err, "missing session store")
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubAnswerer{answer: "hi"})

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{"chat", http.MethodPost, "/chat", `{"query": "hello"}`, http.StatusOK},
		{"chat wrong method", http.MethodGet, "/chat", "", http.StatusMethodNotAllowed},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestServer_PanicDoesNotCrash(t *testing.T) {
	t.Parallel()

	panicker := &panicAnswerer{}
	srv := newTestServer(t, panicker)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"query": "boom"}`))
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() {
		srv.Handler().ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type panicAnswerer struct{}

func (p *panicAnswerer) Answer(_ context.Context, _ *conversation.History, _ string) (string, error) {
	panic("unexpected state")
}
