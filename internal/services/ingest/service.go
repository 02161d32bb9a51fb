// Package ingest turns uploaded PDF bytes into a stored, indexed document.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/ternarybob/lectio/internal/services/chunker"
)

// Service implements the IngestService interface. It orchestrates
// extraction, chunking, document storage, and vector indexing.
type Service struct {
	extractor interfaces.PDFExtractor
	documents interfaces.DocumentStorage
	index     interfaces.VectorIndex
	logger    arbor.ILogger
	chunkSize int
	batchSize int
}

// Compile-time interface assertion
var _ interfaces.IngestService = (*Service)(nil)

// NewService creates a new ingestion service
func NewService(extractor interfaces.PDFExtractor, documents interfaces.DocumentStorage, index interfaces.VectorIndex, ragConfig *common.RAGConfig, logger arbor.ILogger) *Service {
	chunkSize := ragConfig.ChunkSize
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	batchSize := ragConfig.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &Service{
		extractor: extractor,
		documents: documents,
		index:     index,
		logger:    logger,
		chunkSize: chunkSize,
		batchSize: batchSize,
	}
}

// Ingest stores and indexes an uploaded PDF. A fresh identifier is
// generated on every call, so uploading the same file twice produces two
// independent documents. Failures after the identifier is generated leave
// no partial state cleanup behind; orphaned collections are swept by the
// maintenance reconciler.
func (s *Service) Ingest(ctx context.Context, content []byte, filename string) (*interfaces.IngestResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("file must be a PDF, got %q: %w", filename, models.ErrValidation)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("uploaded file is empty: %w", models.ErrValidation)
	}

	documentID := common.NewDocumentID()

	s.logger.Info().
		Str("document_id", documentID).
		Str("filename", filename).
		Int("size", len(content)).
		Msg("Starting document ingestion")

	pages, err := s.extractor.ExtractPages(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %v: %w", filename, err, models.ErrExtraction)
	}

	// Concatenate non-empty pages; a page yielding no text contributes nothing
	extracted := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page) != "" {
			extracted = append(extracted, page)
		}
	}
	text := strings.Join(extracted, "\n")

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text could be extracted from %s: %w", filename, models.ErrExtraction)
	}

	doc := &models.Document{
		ID:        documentID,
		FileName:  filename,
		Size:      int64(len(content)),
		PageCount: len(pages),
		Content:   content,
	}

	chunks := chunker.Chunk(text, s.chunkSize)
	doc.ChunkCount = len(chunks)

	if err := s.documents.SaveDocument(doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	if err := s.index.EnsureCollection(ctx, documentID); err != nil {
		return nil, fmt.Errorf("failed to create vector collection: %w", err)
	}

	// Index chunks in batches; zero chunks is still a successful ingestion
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		batch := chunks[start:end]
		ids := make([]string, len(batch))
		for n := range batch {
			ids[n] = common.ChunkID(documentID, start+n)
		}

		if err := s.index.AddChunks(ctx, documentID, batch, ids); err != nil {
			return nil, fmt.Errorf("failed to index chunks %d-%d: %w", start, end-1, err)
		}
	}

	s.logger.Info().
		Str("document_id", documentID).
		Int("pages", len(pages)).
		Int("chunks", len(chunks)).
		Msg("Document ingestion completed")

	return &interfaces.IngestResult{
		DocumentID: documentID,
		FileName:   filename,
		PageCount:  len(pages),
		ChunkCount: len(chunks),
	}, nil
}
