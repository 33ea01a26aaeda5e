package llm

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
)

// MockClient is a deterministic stand-in for GenaiClient used in tests
// and local development without an API key. Embeddings are derived
// from a hash of the input text, so the same text always embeds to the
// same vector and cosine similarity comparisons in tests are stable.
type MockClient struct {
	ChatResponse string
	EmbedDim     int
}

// NewMockClient returns a MockClient with a 16-dimension embedding
// space, small enough for fast test assertions.
func NewMockClient() *MockClient {
	return &MockClient{EmbedDim: 16}
}

func (c *MockClient) ChatModel() string      { return "mock-chat" }
func (c *MockClient) EmbeddingModel() string { return "mock-embedding" }
func (c *MockClient) Close() error           { return nil }

func (c *MockClient) ExtractJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.ChatResponse != "" {
		return c.ChatResponse, nil
	}
	return `{}`, nil
}

func (c *MockClient) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	return deterministicVector(text, c.dim()), nil
}

func (c *MockClient) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, t := range texts {
		vectors = append(vectors, deterministicVector(t, c.dim()))
	}
	return vectors, nil
}

func (c *MockClient) dim() int {
	if c.EmbedDim <= 0 {
		return 16
	}
	return c.EmbedDim
}

func deterministicVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewPCG(h.Sum64(), 0))

	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = float32(rng.Float64()*2 - 1)
	}
	return vec
}
