package rag

import "errors"

var (
	// ErrEmbedding indicates the embedding provider call failed
	// (auth, rate limit, network, or malformed response).
	ErrEmbedding = errors.New("embedding provider failed")

	// ErrGeneration indicates the generation model call failed.
	// Front ends surface it as a user-visible error; it never crashes
	// the serving process.
	ErrGeneration = errors.New("generation failed")
)
