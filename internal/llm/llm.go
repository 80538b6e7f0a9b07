// Package llm is the chat-completion capability the workflow pipeline depends
// on, with OpenAI-compatible and Anthropic providers.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/joestump/workflows/internal/config"
)

// Message roles accepted by every provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrNoChoices is returned when a provider answers successfully but with no
// generated text.
var ErrNoChoices = errors.New("completion returned no choices")

// Message is one role-tagged entry of a chat request.
type Message struct {
	Role    string
	Content string
}

// Completer sends an ordered list of messages to a model and returns the text
// of the first choice.
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, model string, messages []Message) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	return f(ctx, model, messages)
}

// New creates a Completer for the configured provider.
func New(cfg *config.Config) (Completer, error) {
	httpClient := &http.Client{Timeout: cfg.LLM.Timeout}
	switch cfg.LLM.Provider {
	case "anthropic":
		return newAnthropicClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, httpClient), nil
	case "openai", "openai-compatible":
		return newOpenAIClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}
}
