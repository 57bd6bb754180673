package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alkime/quill/internal/apperr"
)

// OllamaClient calls the /api/generate endpoint of an Ollama server.
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *slog.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
	Error    string  `json:"error"`
}

// NewOllamaClient creates a client for the Ollama server at baseURL.
func NewOllamaClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *OllamaClient {
	return &OllamaClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		logger:  logger,
	}
}

// Complete sends prompt in a single non-streaming request and returns the
// completion text verbatim. It never retries.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/api/generate"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Ollama request", "endpoint", endpoint, "model", c.model, "prompt_length", len(prompt))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrServiceUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", apperr.ErrServiceUnavailable, err)
	}

	var parsed generateResponse
	parseErr := json.Unmarshal(respBody, &parsed)

	if resp.StatusCode != http.StatusOK {
		detail := strings.TrimSpace(string(respBody))
		if parseErr == nil && parsed.Error != "" {
			detail = parsed.Error
		}

		return "", fmt.Errorf("%w: status %d: %s", apperr.ErrServiceUnavailable, resp.StatusCode, detail)
	}

	if parseErr != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrMalformedResponse, parseErr)
	}

	if parsed.Response == nil {
		return "", fmt.Errorf("%w: missing \"response\" field", apperr.ErrMalformedResponse)
	}

	c.logger.Debug("Ollama response",
		"model", c.model,
		"elapsed", time.Since(start),
		"response_length", len(*parsed.Response),
	)

	return *parsed.Response, nil
}
