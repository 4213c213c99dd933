package llm

import (
	"context"
	"fmt"

	"medscribe/internal/config"
	"medscribe/internal/domain"
	"medscribe/internal/llm/anthropic"
	"medscribe/internal/llm/gemini"
	"medscribe/internal/llm/ollama"
	"medscribe/internal/llm/openai"
	"medscribe/internal/port"
)

// Backend is a single provider's text-generation endpoint. Model and
// credential travel per call because both are caller-selected.
type Backend interface {
	Generate(ctx context.Context, model, apiKey, systemPrompt, userText string) (string, error)
}

// Router dispatches generation requests across the closed provider set. It
// implements port.TextGenerator: a request never fails, it produces either a
// completion or an "Error with <provider>: ..." string. Single attempt per
// call; any retry or fallback policy belongs to callers, and none exists.
type Router struct {
	backends map[domain.Provider]Backend
}

// NewRouter creates a Router with all supported provider backends.
func NewRouter(cfg *config.LLMConfig) *Router {
	return NewRouterWithBackends(map[domain.Provider]Backend{
		domain.ProviderOllama:    ollama.NewClient(cfg),
		domain.ProviderOpenAI:    openai.NewClient(cfg),
		domain.ProviderGemini:    gemini.NewClient(cfg),
		domain.ProviderAnthropic: anthropic.NewClient(cfg),
	})
}

// NewRouterWithBackends creates a Router over an explicit backend map (for testing).
func NewRouterWithBackends(backends map[domain.Provider]Backend) *Router {
	return &Router{backends: backends}
}

func (r *Router) Generate(ctx context.Context, sel domain.ModelSelection, systemPrompt, userText string) string {
	backend, ok := r.backends[sel.Provider]
	if !ok {
		return fmt.Sprintf("Error with %s: Unsupported provider", sel.Provider)
	}
	text, err := backend.Generate(ctx, sel.Model, sel.APIKey, systemPrompt, userText)
	if err != nil {
		return fmt.Sprintf("Error with %s: %v", sel.Provider, err)
	}
	return text
}

var _ port.TextGenerator = (*Router)(nil)
