package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medscribe/internal/config"
	"medscribe/internal/llm/gemini"
)

func newTestClient(serverURL string) *gemini.Client {
	cfg := &config.LLMConfig{TimeoutSecs: 30}
	return gemini.NewClientWithEndpoint(cfg, serverURL)
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	llmJSON := `{"eligible":true}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		content := contents[0].(map[string]interface{})
		assert.Equal(t, "user", content["role"])
		parts := content["parts"].([]interface{})
		assert.Len(t, parts, 1)
		text := parts[0].(map[string]interface{})["text"].(string)
		// system prompt and user payload arrive as one combined text part
		assert.Equal(t, "check eligibility\n\nUSER INPUT: MEDICAL_DATA: {}", text)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"parts": []map[string]interface{}{
							{"text": llmJSON},
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.Generate(context.Background(), "gemini-2.5-flash", "test-gemini-key", "check eligibility", "MEDICAL_DATA: {}")
	require.NoError(t, err)
	assert.Equal(t, llmJSON, text)
}

func TestGeminiClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Generate(context.Background(), "gemini-2.5-flash", "bad-key", "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Generate(context.Background(), "gemini-2.5-flash", "key", "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiClient_Generate_EmptyParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Generate(context.Background(), "gemini-2.5-flash", "key", "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
