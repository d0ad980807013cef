package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
)

// maxRequestBody caps the chat request body size.
const maxRequestBody = 1 << 20 // 1 MiB

// Answerer runs one query through the retrieval pipeline against a session's
// history.
type Answerer interface {
	Answer(ctx context.Context, history *conversation.History, query string) (string, error)
}

// chatRequest is the POST /chat request body. SessionID is optional; when
// absent the server mints one and returns it in the response.
type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId,omitempty"`
}

// chatResponse is the POST /chat success body.
type chatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"sessionId"`
}

// chatHandler serves the chat endpoint.
type chatHandler struct {
	answerer Answerer
	sessions *conversation.Store
	logger   *slog.Logger
}

// handleChat answers one chat query.
//
//	400 {"error": "No query provided"}  missing or empty query
//	200 {"answer": "...", "sessionId": "..."}
//	500 {"error": "..."}                pipeline failure
func (h *chatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "No query provided", h.logger)
		return
	}

	sessionID, history := h.sessions.Get(req.SessionID)

	answer, err := h.answerer.Answer(r.Context(), history, req.Query)
	if err != nil {
		h.logger.Error("answering chat query", "error", err, "sessionId", sessionID)
		writeError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer, SessionID: sessionID}, h.logger)
}
