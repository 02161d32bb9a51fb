package interfaces

import "context"

// Message represents a single message in a chat conversation.
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string `json:"role" validate:"required,oneof=user assistant system"`

	// Content contains the text content of the message
	Content string `json:"content" validate:"required"`
}

// LLMService defines the interface for language model operations: chat
// completions and embedding generation. Implementations use cloud APIs
// (Anthropic Claude, Google Gemini).
type LLMService interface {
	// Chat generates a completion response based on the conversation history.
	// The messages slice contains the full conversation context in
	// chronological order, including system prompts, user messages, and
	// previous assistant responses. The response length is bounded by the
	// provider's configured max output tokens.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Embed generates an embedding vector for the given text. Providers
	// without an embedding endpoint return an error.
	Embed(ctx context.Context, text string) ([]float32, error)

	// HealthCheck verifies the service is operational and can handle requests.
	HealthCheck(ctx context.Context) error

	// ProviderName returns the provider identifier ("claude", "gemini").
	ProviderName() string

	// Close releases resources held by the provider client.
	Close() error
}

// Embedder is the narrow embedding contract consumed by the vector index.
// Satisfied by LLMService.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
