// Package ollama provides an HTTP client for the local Ollama daemon.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/chat"
	"github.com/openbobs/gateway/internal/resilience"
)

// Client talks to the Ollama HTTP API. Chat and model listing use separate
// timeouts: a completion may legitimately take a minute, while the health
// probe is polled opportunistically and must give up fast.
type Client struct {
	baseURL      string
	chatClient   *http.Client
	healthClient *http.Client
	breaker      *resilience.Breaker
}

// NewClient creates an Ollama client for the given base URL.
func NewClient(baseURL string, chatTimeout, healthTimeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		chatClient:   &http.Client{Timeout: chatTimeout},
		healthClient: &http.Client{Timeout: healthTimeout},
	}
}

// SetBreaker attaches a circuit breaker to outgoing chat calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

type chatPayload struct {
	Model    string         `json:"model"`
	Stream   bool           `json:"stream"`
	Messages []chat.Message `json:"messages"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Chat forwards a non-streaming completion request and returns the reply
// content. A connection-level failure wraps domain.ErrUnavailable; any
// other failure (bad status, undecodable body) is an internal fault.
func (c *Client) Chat(ctx context.Context, model string, messages []chat.Message) (string, error) {
	body, err := json.Marshal(chatPayload{Model: model, Stream: false, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var reply string
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.chatClient.Do(req)
		if err != nil {
			return fmt.Errorf("Ollama %w: %v", domain.ErrUnavailable, err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("ollama API error %d: %s", resp.StatusCode, data)
		}

		var decoded chatResponse
		if err := json.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("unmarshal chat response: %w", err)
		}
		reply = decoded.Message.Content
		return nil
	}

	if c.breaker != nil {
		err = c.breaker.Execute(call)
		if errors.Is(err, resilience.ErrCircuitOpen) {
			err = fmt.Errorf("Ollama %w: %v", domain.ErrUnavailable, err)
		}
	} else {
		err = call()
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the names of locally available models from /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Ollama %w: %v", domain.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ollama API error %d", resp.StatusCode)
	}

	var decoded tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("unmarshal tags response: %w", err)
	}

	names := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
