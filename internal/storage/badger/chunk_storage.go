package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
)

// ChunkStorage implements the ChunkStorage interface for Badger.
// Collection records are stored under a "col:" key prefix so they never
// collide with chunk keys.
type ChunkStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewChunkStorage creates a new ChunkStorage instance
func NewChunkStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ChunkStorage {
	return &ChunkStorage{
		db:     db,
		logger: logger,
	}
}

func collectionKey(name string) string {
	return "col:" + name
}

func (s *ChunkStorage) SaveCollection(col *models.Collection) error {
	if col.Name == "" {
		return fmt.Errorf("collection name is required")
	}
	if col.CreatedAt.IsZero() {
		col.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(collectionKey(col.Name), col); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

func (s *ChunkStorage) HasCollection(name string) (bool, error) {
	var col models.Collection
	err := s.db.Store().Get(collectionKey(name), &col)
	if err == badgerhold.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}
	return true, nil
}

func (s *ChunkStorage) ListCollections() ([]string, error) {
	var cols []models.Collection
	if err := s.db.Store().Find(&cols, badgerhold.Where("Name").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	names := make([]string, len(cols))
	for i := range cols {
		names[i] = cols[i].Name
	}
	return names, nil
}

// DeleteCollection removes the collection record and all of its chunks.
// Deleting an absent collection is a no-op.
func (s *ChunkStorage) DeleteCollection(name string) error {
	if err := s.db.Store().Delete(collectionKey(name), &models.Collection{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	if err := s.db.Store().DeleteMatching(&models.Chunk{}, badgerhold.Where("Collection").Eq(name).Index("Collection")); err != nil {
		return fmt.Errorf("failed to delete collection chunks: %w", err)
	}
	return nil
}

func (s *ChunkStorage) SaveChunks(chunks []*models.Chunk) error {
	now := time.Now()
	for _, chunk := range chunks {
		if chunk.ID == "" {
			return fmt.Errorf("chunk ID is required")
		}
		if chunk.CreatedAt.IsZero() {
			chunk.CreatedAt = now
		}
		if err := s.db.Store().Upsert(chunk.ID, chunk); err != nil {
			return fmt.Errorf("failed to save chunk %s: %w", chunk.ID, err)
		}
	}
	return nil
}

// GetChunks returns all chunks of a collection in sequence order
func (s *ChunkStorage) GetChunks(collection string) ([]*models.Chunk, error) {
	var chunks []models.Chunk
	if err := s.db.Store().Find(&chunks, badgerhold.Where("Collection").Eq(collection).Index("Collection")); err != nil {
		return nil, fmt.Errorf("failed to get chunks: %w", err)
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Seq < chunks[j].Seq
	})

	result := make([]*models.Chunk, len(chunks))
	for i := range chunks {
		result[i] = &chunks[i]
	}
	return result, nil
}

func (s *ChunkStorage) CountChunks(collection string) (int, error) {
	count, err := s.db.Store().Count(&models.Chunk{}, badgerhold.Where("Collection").Eq(collection).Index("Collection"))
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return int(count), nil
}
