// Package cmd provides the CLI commands of the tourism chatbot.
//
// Commands:
//   - chat: interactive REPL chat
//   - serve: HTTP API server
//   - sync: rebuild the vector index from the destination catalog
//   - seed: load the destination dataset CSV into the catalog
//
// Signal handling and graceful shutdown are implemented for the long-running
// commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Execute is the main entry point for the CLI.
func Execute() error {
	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	logger := initLogger()
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "chat":
		return runChat(logger)
	case "serve":
		return runServe(logger)
	case "sync":
		return runSync(logger)
	case "seed":
		return runSeed(logger, os.Args[2:])
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// initLogger builds the process logger. DEBUG (any value) enables debug
// level. Logs go to stderr so stdout stays clean for REPL output.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Tourism Chatbot - retrieval-augmented travel assistant")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tourism chat             Start interactive chat mode")
	fmt.Println("  tourism serve            Start HTTP API server (default: 0.0.0.0:8080)")
	fmt.Println("  tourism sync             Rebuild the vector index from the catalog")
	fmt.Println("  tourism seed <file.csv>  Load the destination dataset into the catalog")
	fmt.Println("  tourism version          Show version information")
	fmt.Println("  tourism help             Show this help")
	fmt.Println()
	fmt.Println("Chat Commands (in interactive mode):")
	fmt.Println("  /help                    Show available commands")
	fmt.Println("  /clear                   Clear conversation history")
	fmt.Println("  /exit, /quit             Exit")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY           Required: Gemini API key")
	fmt.Println("  MILVUS_HOST, MILVUS_PORT Vector index address (default: localhost:19530)")
	fmt.Println("  DATABASE_URL             Catalog database URL (sync and seed)")
	fmt.Println("  DEBUG                    Optional: enable debug logging")
}
