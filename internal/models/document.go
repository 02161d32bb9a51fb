package models

import "time"

// Document represents an uploaded PDF and its ingestion metadata.
// The raw bytes are stored alongside the metadata so the original file
// can be served back to the caller; they are excluded from JSON output.
type Document struct {
	ID         string `json:"id"` // doc_{uuid}, never derived from the filename
	FileName   string `json:"file_name"`
	Size       int64  `json:"size"`
	PageCount  int    `json:"page_count"`
	ChunkCount int    `json:"chunk_count"`

	Content []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chunk is one bounded-size slice of a document's extracted text, stored
// in a per-document collection together with its embedding vector.
// Chunk IDs follow the composite form {document_id}_{seq}.
type Chunk struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection" badgerhold:"index"` // collection name == document ID
	Seq        int       `json:"seq"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding"`
	CreatedAt  time.Time `json:"created_at"`
}

// Collection marks the existence of a per-document vector collection.
// A collection can exist with zero chunks (a PDF whose extracted text
// chunked to nothing), which is distinct from the collection being absent.
type Collection struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentStats summarizes the corpus for the status endpoint.
type DocumentStats struct {
	TotalDocuments   int       `json:"total_documents"`
	TotalChunks      int       `json:"total_chunks"`
	TotalContentSize int64     `json:"total_content_size"`
	LastUpdated      time.Time `json:"last_updated"`
}
