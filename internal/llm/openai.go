package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/alkime/quill/internal/apperr"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// placeholderAPIKey is sent when no key is configured; Ollama ignores it.
const placeholderAPIKey = "ollama"

// OpenAIClient calls an OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a client for the chat completion API at baseURL.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	if apiKey == "" {
		apiKey = placeholderAPIKey
	}

	return &OpenAIClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithRequestTimeout(timeout),
			option.WithMaxRetries(0),
		),
		model: model,
	}
}

// Complete sends prompt as a single user message.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrServiceUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", apperr.ErrMalformedResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
