// Package completion implements the chat-completions HTTP client used to
// answer grounded questions. The default endpoint is Perplexity, but anything
// speaking the OpenAI-compatible chat API works.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
)

// Client is a bearer-authenticated JSON client for a chat-completions API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	client     *http.Client
	maxRetries int
}

// Config configures the completion client. APIKeyEnv names the environment
// variable holding the credential; the key itself never lives in config files.
type Config struct {
	BaseURL    string
	APIKeyEnv  string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// NewClient creates a completion client from the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar-pro"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: t},
		maxRetries: retries,
	}, nil
}

type request struct {
	Model    string                 `json:"model"`
	Messages []domain.PromptMessage `json:"messages"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the ordered message list and returns the assistant's text.
// Transient failures (network errors, 429, 5xx) are retried with exponential
// backoff, honoring Retry-After. Other non-2xx statuses fail immediately with
// the status and response body for diagnostics.
func (c *Client) Complete(ctx context.Context, messages []domain.PromptMessage) (string, error) {
	payload, err := json.Marshal(request{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}
	url := c.baseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries && ctx.Err() == nil {
				sleep(ctx, retryDelay(attempt))
				continue
			}
			return "", lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("completion API %d: %s", resp.StatusCode, string(body))
			if attempt < c.maxRetries {
				sleep(ctx, retryAfter(resp, attempt))
				continue
			}
			return "", lastErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("completion API %d: %s", resp.StatusCode, string(body))
		}
		if readErr != nil {
			return "", readErr
		}

		var out response
		if err := json.Unmarshal(body, &out); err != nil {
			return "", fmt.Errorf("malformed completion response: %w", err)
		}
		if len(out.Choices) == 0 {
			return "", fmt.Errorf("completion response contains no choices")
		}
		return out.Choices[0].Message.Content, nil
	}
	return "", lastErr
}

func retryAfter(resp *http.Response, attempt int) time.Duration {
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return retryDelay(attempt)
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
