package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shivneri/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client relays chat messages to a hosted chat-completions endpoint
// (OpenAI wire format) and returns the reply verbatim.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	model        string
	systemPrompt string
	rateLimiter  *rate.Limiter
	debug        bool
}

// NewClient creates a completion client. requestsPerMinute bounds the
// outbound rate to the completion API.
func NewClient(apiKey, baseURL, model, systemPrompt string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:       apiKey,
		baseURL:      baseURL,
		model:        model,
		systemPrompt: systemPrompt,
		rateLimiter:  limiter,
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends one user message and returns the model's reply text.
func (c *Client) Complete(ctx context.Context, userMessage string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.baseURL + "/v1/chat/completions"

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[COMPLETION] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrChatAPIFailure, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Retry on rate limiting and server errors; everything else is final.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			if c.debug {
				log.Printf("[COMPLETION] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrChatAPIFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrChatAPIFailure, resp.StatusCode, string(body))
		}

		var completion completionResponse
		if err := json.Unmarshal(body, &completion); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
			return "", fmt.Errorf("%w: empty completion", domain.ErrChatAPIFailure)
		}

		return completion.Choices[0].Message.Content, nil
	}

	return "", lastErr
}
