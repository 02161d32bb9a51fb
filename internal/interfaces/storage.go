package interfaces

import "github.com/ternarybob/lectio/internal/models"

// DocumentStorage persists uploaded documents: raw bytes, filename, and
// ingestion metadata. Implementations must be safe for concurrent use.
type DocumentStorage interface {
	SaveDocument(doc *models.Document) error
	GetDocument(id string) (*models.Document, error)
	HasDocument(id string) (bool, error)
	DeleteDocument(id string) error
	ListDocuments() ([]*models.Document, error)
	CountDocuments() (int, error)
}

// ChunkStorage persists vector collections and their chunks. A collection
// record exists independently of its chunks so an empty collection is
// distinguishable from an absent one.
type ChunkStorage interface {
	SaveCollection(col *models.Collection) error
	HasCollection(name string) (bool, error)
	ListCollections() ([]string, error)
	DeleteCollection(name string) error

	SaveChunks(chunks []*models.Chunk) error
	GetChunks(collection string) ([]*models.Chunk, error)
	CountChunks(collection string) (int, error)
}

// StorageManager provides access to all storage interfaces.
type StorageManager interface {
	DocumentStorage() DocumentStorage
	ChunkStorage() ChunkStorage
	Close() error
}
