// Package rag implements the retrieval-augmented generation pipeline.
//
// A query flows through five steps: embed the query, search the vector
// index for the single closest destination, render that destination into a
// context block, combine query and context into a prompt, and call the
// generation model with the prompt plus the bounded conversation history.
//
// The external collaborators (embedding model, vector index, generation
// model) sit behind small consumer-defined interfaces so the pipeline can
// be exercised without network access.
package rag
