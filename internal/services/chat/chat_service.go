// Package chat implements the retrieval-augmented chat pipeline: the
// latest user message is matched against a document's vector collection
// and the best chunks are injected as grounding context for the model.
package chat

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
)

// ChatService implements RAG-enabled chat over ingested documents
type ChatService struct {
	llmService interfaces.LLMService
	documents  interfaces.DocumentStorage
	index      interfaces.VectorIndex
	logger     arbor.ILogger
	topK       int
}

// Compile-time interface assertion
var _ interfaces.ChatService = (*ChatService)(nil)

// NewChatService creates a new chat service
func NewChatService(llmService interfaces.LLMService, documents interfaces.DocumentStorage, index interfaces.VectorIndex, topK int, logger arbor.ILogger) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	return &ChatService{
		llmService: llmService,
		documents:  documents,
		index:      index,
		logger:     logger,
		topK:       topK,
	}
}

// Chat answers the latest user message in req.Messages grounded in the
// document's retrieved chunks. The full conversation is passed to the
// model unmodified, with the grounding system message prepended.
func (s *ChatService) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	query, ok := latestUserMessage(req.Messages)
	if !ok {
		return nil, fmt.Errorf("no user message found in conversation: %w", models.ErrValidation)
	}

	hasCollection, err := s.index.HasCollection(ctx, req.DocumentID)
	if err != nil {
		return nil, s.upstreamError(req.DocumentID, "collection lookup failed", err)
	}
	if !hasCollection {
		// The document store disambiguates a never-uploaded ID from an
		// upload whose indexing never completed
		hasDoc, docErr := s.documents.HasDocument(req.DocumentID)
		if docErr == nil && hasDoc {
			return nil, fmt.Errorf("document %s was uploaded but its indexing is incomplete: %w", req.DocumentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("document %s was never uploaded: %w", req.DocumentID, models.ErrNotFound)
	}

	s.logger.Debug().
		Str("document_id", req.DocumentID).
		Int("message_count", len(req.Messages)).
		Int("query_length", len(query)).
		Msg("Processing chat request")

	contexts, err := s.index.Query(ctx, req.DocumentID, query, s.topK)
	if err != nil {
		return nil, s.upstreamError(req.DocumentID, "similarity query failed", err)
	}

	// Prepend the grounding system message to the unmodified conversation
	messages := make([]interfaces.Message, 0, len(req.Messages)+1)
	messages = append(messages, interfaces.Message{
		Role:    "system",
		Content: buildSystemPrompt(contexts),
	})
	messages = append(messages, req.Messages...)

	response, err := s.llmService.Chat(ctx, messages)
	if err != nil {
		return nil, s.upstreamError(req.DocumentID, "model call failed", err)
	}

	s.logger.Info().
		Str("document_id", req.DocumentID).
		Int("contexts", len(contexts)).
		Int("response_length", len(response)).
		Msg("Chat completed")

	return &interfaces.ChatResponse{Response: response}, nil
}

// HealthCheck verifies the downstream LLM service is reachable
func (s *ChatService) HealthCheck(ctx context.Context) error {
	return s.llmService.HealthCheck(ctx)
}

// upstreamError wraps a collaborator failure, carrying the human-readable
// document name when the store can resolve it.
func (s *ChatService) upstreamError(documentID, msg string, err error) error {
	name := documentID
	if doc, docErr := s.documents.GetDocument(documentID); docErr == nil {
		name = doc.FileName
	}
	return fmt.Errorf("%s for document %q: %v: %w", msg, name, err, models.ErrUpstream)
}

// latestUserMessage scans the conversation from the end for the most
// recent message with role "user".
func latestUserMessage(messages []interfaces.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content, true
		}
	}
	return "", false
}
