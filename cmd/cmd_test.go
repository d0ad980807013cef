package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
)

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name     string
		cmd      string
		wantExit bool
	}{
		{"help", "/help", false},
		{"clear", "/clear", false},
		{"exit", "/exit", true},
		{"quit", "/quit", true},
		{"unknown", "/bogus", false},
		{"exit with args", "/exit now", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &conversation.History{}
			assert.Equal(t, tt.wantExit, handleCommand(tt.cmd, history))
		})
	}
}

func TestHandleCommand_ClearEmptiesHistory(t *testing.T) {
	history := &conversation.History{}
	history.Append(conversation.Turn{Role: conversation.RoleUser, Text: "hello"})

	handleCommand("/clear", history)

	assert.Zero(t, history.Len())
}

func TestInitLogger(t *testing.T) {
	logger := initLogger()
	assert.NotNil(t, logger)
}
