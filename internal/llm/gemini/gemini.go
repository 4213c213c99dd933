package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medscribe/internal/config"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls Google's Gemini generateContent API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Gemini client from the LLM config.
func NewClient(cfg *config.LLMConfig) *Client {
	return newClient(cfg, apiBaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom base URL (for testing).
func NewClientWithEndpoint(cfg *config.LLMConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.LLMConfig, baseURL string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// apiResponse models the generateContent response.
type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) Generate(ctx context.Context, model, apiKey, systemPrompt, userText string) (string, error) {
	// Gemini takes the instruction and payload as one combined text part.
	fullPrompt := fmt.Sprintf("%s\n\nUSER INPUT: %s", systemPrompt, userText)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": fullPrompt},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from API: no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
