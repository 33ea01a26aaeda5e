// Package llm wraps the generative and embedding model calls the
// extraction, embedding, and explanation stages depend on behind a
// narrow interface, so stage handlers can be tested against a mock
// without a live API key.
package llm

import "context"

// Client is the capability contract stage handlers depend on.
type Client interface {
	// ExtractJSON sends systemPrompt and userPrompt to the chat model
	// with JSON output enforced, and returns the raw JSON response text.
	ExtractJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// EmbedOne returns the embedding vector for a single text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// EmbedMany returns one embedding vector per input text, in order.
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)

	// ChatModel reports the model identifier used for chat calls, so
	// callers can stamp it onto persisted rows (Extraction.llm_model,
	// Explanation.llm_model).
	ChatModel() string

	// EmbeddingModel reports the model identifier used for embedding
	// calls, for the same reason.
	EmbeddingModel() string

	Close() error
}
