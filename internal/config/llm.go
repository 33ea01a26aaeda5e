package config

import "time"

// LLMConfig controls the generative and embedding model clients used
// by the extraction, embedding, and explanation stages.
type LLMConfig struct {
	Provider       string        `yaml:"provider"` // currently only "genai"
	APIKey         string        `yaml:"api_key"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	// Temperature controls sampling for the JSON-mode extraction call.
	// Kept low so repeated runs over the same resume/job text converge
	// on the same structured output.
	Temperature float32 `yaml:"temperature"`
}

// DefaultLLMConfig returns the baseline LLM client configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:       "genai",
		ChatModel:      "gemini-2.0-flash",
		EmbeddingModel: "text-embedding-004",
		RequestTimeout: 30 * time.Second,
		MaxRetries:     2,
		Temperature:    0.1,
	}
}

// Validate checks that required LLM fields are present.
func (c LLMConfig) Validate() error {
	if c.APIKey == "" {
		return NewValidationError("llm", "api_key", ErrMissingRequired)
	}
	if c.ChatModel == "" {
		return NewValidationError("llm", "chat_model", ErrMissingRequired)
	}
	if c.EmbeddingModel == "" {
		return NewValidationError("llm", "embedding_model", ErrMissingRequired)
	}
	return nil
}
