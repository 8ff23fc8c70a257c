package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shivneri/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", "gpt-4o-mini", "You are a helpful assistant.", 20)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "do you deliver on sundays", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Yes, we deliver every day."}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", "You are a helpful assistant.", 100)
	reply, err := client.Complete(context.Background(), "do you deliver on sundays")

	require.NoError(t, err)
	assert.Equal(t, "Yes, we deliver every day.", reply)
}

func TestComplete_RetryOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello!"}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", "", 100)
	reply, err := client.Complete(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)
	assert.Equal(t, 3, attempts)
}

func TestComplete_ClientErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL, "gpt-4o-mini", "", 100)
	_, err := client.Complete(context.Background(), "hi")

	assert.ErrorIs(t, err, domain.ErrChatAPIFailure)
	assert.Equal(t, 1, attempts)
}

func TestComplete_ExhaustedRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", "", 100)
	_, err := client.Complete(context.Background(), "hi")

	assert.ErrorIs(t, err, domain.ErrChatAPIFailure)
	assert.Equal(t, 3, attempts)
}

func TestComplete_EmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", "", 100)
	_, err := client.Complete(context.Background(), "hi")

	assert.ErrorIs(t, err, domain.ErrChatAPIFailure)
}
