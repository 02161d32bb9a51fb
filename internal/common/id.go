package common

import (
	"fmt"

	"github.com/google/uuid"
)

// NewDocumentID generates a unique document ID with the "doc_" prefix
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// ChunkID builds the deterministic ID for a chunk within a document.
// Format: <documentID>_<seq>
func ChunkID(documentID string, seq int) string {
	return fmt.Sprintf("%s_%d", documentID, seq)
}
