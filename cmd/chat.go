package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/app"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/config"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
	"github.com/Swuzz123/Tourism-chatbot-demo/internal/log"
)

// runChat starts the interactive REPL. One REPL process is one session: the
// conversation history lives for the life of the loop and /clear resets it.
func runChat(logger log.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("closing application", "error", err)
		}
	}()

	history := &conversation.History{}

	fmt.Println("Tourism Chatbot - ask me about travel destinations in India")
	fmt.Println("Type /help for commands, /exit to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			// EOF (Ctrl+D)
			fmt.Println("\nGoodbye!")
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleCommand(input, history) {
				break
			}
			continue
		}

		answer, err := a.Pipeline.Answer(ctx, history, input)
		if err != nil {
			// A failed query is not fatal to the session; the history is
			// unchanged and the user can retry.
			if errors.Is(err, context.Canceled) {
				fmt.Println("\nGoodbye!")
				break
			}
			fmt.Printf("Error: %v\n\n", err)
			continue
		}

		fmt.Println("Assistant: " + answer)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

// handleCommand handles slash commands, returning true to exit the REPL.
func handleCommand(cmd string, history *conversation.History) bool {
	switch strings.Fields(cmd)[0] {
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /help         Show this help")
		fmt.Println("  /clear        Clear conversation history")
		fmt.Println("  /exit, /quit  Exit")
		fmt.Println()

	case "/clear":
		history.Clear()
		fmt.Println("Conversation history cleared.")
		fmt.Println()

	case "/exit", "/quit":
		fmt.Println("Goodbye!")
		return true

	default:
		fmt.Printf("Unknown command: %s (try /help)\n\n", cmd)
	}

	return false
}
