package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"medscribe/internal/config"
)

const ocrPrompt = "Transcribe this medical document text exactly."

// Client calls a self-hosted Ollama server. It serves two roles: a generic
// chat backend for the structuring and reasoning phases, and the fixed OCR
// backend for the extraction pipeline. No credential is required.
type Client struct {
	baseURL  string
	ocrModel string
	client   *http.Client
}

// NewClient creates an Ollama client from the LLM config.
func NewClient(cfg *config.LLMConfig) *Client {
	return newClient(cfg, cfg.OllamaBaseURL)
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
	ocrModel := cfg.OCRModel
	if ocrModel == "" {
		ocrModel = "deepseek-ocr"
	}
	return &Client{
		baseURL:  baseURL,
		ocrModel: ocrModel,
		client:   &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

func (c *Client) Generate(ctx context.Context, model, _apiKey, systemPrompt, userText string) (string, error) {
	messages := []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userText},
	}
	return c.chat(ctx, model, messages)
}

// Transcribe runs OCR over the image at imagePath using the fixed OCR model.
func (c *Client) Transcribe(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	messages := []chatMessage{
		{
			Role:    "user",
			Content: ocrPrompt,
			Images:  []string{base64.StdEncoding.EncodeToString(data)},
		},
	}
	return c.chat(ctx, c.ocrModel, messages)
}

func (c *Client) chat(ctx context.Context, model string, messages []chatMessage) (string, error) {
	reqBody := map[string]interface{}{
		"model":    model,
		"messages": messages,
		"stream":   false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	return parsed.Message.Content, nil
}
