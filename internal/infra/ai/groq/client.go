package groq

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/platex-api/internal/domain/ai"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
	maxTokens      = 2048
)

// Client is the text-only chat backend. Groq exposes an OpenAI-compatible
// API, so the stock openai client works against it with a swapped base URL.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = defaultBaseURL
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Generate(ctx context.Context, p domai.Prompt, media *domai.Media) (string, error) {
	if media != nil {
		return "", domai.ErrMediaUnsupported
	}

	model := c.Model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.5,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
	}
	if p.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
