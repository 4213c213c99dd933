package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medscribe/internal/config"
	"medscribe/internal/llm/anthropic"
)

func newTestClient(serverURL string) *anthropic.Client {
	cfg := &config.LLMConfig{TimeoutSecs: 30}
	return anthropic.NewClientWithEndpoint(cfg, serverURL)
}

func TestAnthropicClient_Generate_Success(t *testing.T) {
	llmJSON := `{"summary":"Stable"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-anthropic-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-5", reqBody["model"])
		assert.Equal(t, float64(4096), reqBody["max_tokens"])
		assert.Equal(t, "analyze this", reqBody["system"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		user := messages[0].(map[string]interface{})
		assert.Equal(t, "user", user["role"])
		assert.Equal(t, "CURRENT_DATA: {}", user["content"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": llmJSON},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.Generate(context.Background(), "claude-sonnet-4-5", "test-anthropic-key", "analyze this", "CURRENT_DATA: {}")
	require.NoError(t, err)
	assert.Equal(t, llmJSON, text)
}

func TestAnthropicClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Generate(context.Background(), "claude-sonnet-4-5", "key", "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAnthropicClient_Generate_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Generate(context.Background(), "claude-sonnet-4-5", "key", "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content blocks")
}
