package interfaces

import "context"

// ChatRequest is the wire shape of a chat call: a document to ground the
// answer in and the full conversation history. The service holds no
// conversation state between requests; callers resend the history.
type ChatRequest struct {
	DocumentID string    `json:"document_id" validate:"required"`
	Messages   []Message `json:"messages" validate:"required,min=1,dive"`
}

// ChatResponse carries the model's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatService answers questions about an ingested document via
// retrieval-augmented generation.
type ChatService interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// HealthCheck verifies the underlying model provider is reachable.
	HealthCheck(ctx context.Context) error
}
