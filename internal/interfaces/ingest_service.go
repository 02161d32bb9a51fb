package interfaces

import "context"

// IngestResult is returned to the caller after a successful upload.
// The fileName casing matches the frontend contract.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"fileName"`
	PageCount  int    `json:"page_count"`
	ChunkCount int    `json:"chunk_count"`
}

// IngestService turns an uploaded PDF into a stored, indexed document.
type IngestService interface {
	Ingest(ctx context.Context, content []byte, filename string) (*IngestResult, error)
}
