// Package documents exposes read and delete operations over ingested documents.
package documents

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
)

// Service provides document retrieval, listing, deletion, and corpus stats
type Service struct {
	documents interfaces.DocumentStorage
	index     interfaces.VectorIndex
	logger    arbor.ILogger
}

// NewService creates a new document service
func NewService(documents interfaces.DocumentStorage, index interfaces.VectorIndex, logger arbor.ILogger) *Service {
	return &Service{
		documents: documents,
		index:     index,
		logger:    logger,
	}
}

// GetDocument returns the document with the given ID
func (s *Service) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.documents.GetDocument(id)
}

// ListDocuments returns all ingested documents
func (s *Service) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	return s.documents.ListDocuments()
}

// DeleteDocument removes the store entry and best-effort deletes the
// vector collection. The store entry removal is authoritative: a
// collection deletion failure is logged but does not fail the delete,
// since a stray collection is harmless dead storage whereas a store
// entry without a collection would break chat.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if err := s.documents.DeleteDocument(id); err != nil {
		return err
	}

	if err := s.index.DeleteCollection(ctx, id); err != nil {
		s.logger.Warn().
			Err(err).
			Str("document_id", id).
			Msg("Failed to delete vector collection, leaving orphan for reconciler")
	}

	s.logger.Info().Str("document_id", id).Msg("Document deleted")
	return nil
}

// GetStats summarizes the stored corpus
func (s *Service) GetStats(ctx context.Context) (*models.DocumentStats, error) {
	docs, err := s.documents.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	stats := &models.DocumentStats{
		TotalDocuments: len(docs),
	}
	for _, doc := range docs {
		stats.TotalChunks += doc.ChunkCount
		stats.TotalContentSize += doc.Size
		if doc.UpdatedAt.After(stats.LastUpdated) {
			stats.LastUpdated = doc.UpdatedAt
		}
	}
	return stats, nil
}
