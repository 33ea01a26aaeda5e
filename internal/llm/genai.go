package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ryo-aien/recruiting-screening-assistant/internal/config"
)

// GenaiClient implements Client against the Gemini API via
// google.golang.org/genai.
type GenaiClient struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
	temperature    float32
}

// NewGenaiClient dials the Gemini API using cfg's API key and model
// names.
func NewGenaiClient(ctx context.Context, cfg config.LLMConfig) (*GenaiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}
	return &GenaiClient{
		client:         client,
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
	}, nil
}

func (c *GenaiClient) ChatModel() string      { return c.chatModel }
func (c *GenaiClient) EmbeddingModel() string { return c.embeddingModel }
func (c *GenaiClient) Close() error           { return nil }

func (c *GenaiClient) ExtractJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	contents := genai.Text(userPrompt)
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr(c.temperature),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.chatModel, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("llm: extract json: %w", err)
	}
	return extractText(result)
}

func (c *GenaiClient) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *GenaiClient) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	result, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("llm: embed content: %w", err)
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, e := range result.Embeddings {
		vectors = append(vectors, e.Values)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("llm: expected %d embeddings, got %d", len(texts), len(vectors))
	}
	return vectors, nil
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("llm: no content generated")
	}
	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("llm: empty response")
	}
	return text, nil
}
