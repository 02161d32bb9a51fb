// Package vector implements per-document vector collections backed by
// chunk storage, with in-process cosine-similarity search.
package vector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
)

// Index implements the VectorIndex interface. Embeddings are produced by
// the configured embedder and persisted with their chunks; queries embed
// the query text and rank stored chunks by cosine similarity.
type Index struct {
	embedder interfaces.Embedder
	chunks   interfaces.ChunkStorage
	logger   arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.VectorIndex = (*Index)(nil)

// NewIndex creates a new vector index
func NewIndex(embedder interfaces.Embedder, chunks interfaces.ChunkStorage, logger arbor.ILogger) *Index {
	return &Index{
		embedder: embedder,
		chunks:   chunks,
		logger:   logger,
	}
}

// EnsureCollection creates the named collection if it does not exist
func (i *Index) EnsureCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	return i.chunks.SaveCollection(&models.Collection{Name: name})
}

// HasCollection reports whether the named collection exists
func (i *Index) HasCollection(ctx context.Context, name string) (bool, error) {
	return i.chunks.HasCollection(name)
}

// AddChunks embeds texts and stores them in the collection. texts and ids
// are positionally paired. The chunk sequence number is recovered from the
// id suffix so retrieval order is stable.
func (i *Index) AddChunks(ctx context.Context, collection string, texts []string, ids []string) error {
	if len(texts) != len(ids) {
		return fmt.Errorf("texts and ids length mismatch: %d != %d", len(texts), len(ids))
	}
	if len(texts) == 0 {
		return nil
	}

	chunks := make([]*models.Chunk, 0, len(texts))
	for n, text := range texts {
		embedding, err := i.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %s: %w", ids[n], err)
		}
		chunks = append(chunks, &models.Chunk{
			ID:         ids[n],
			Collection: collection,
			Seq:        seqFromID(ids[n], n),
			Text:       text,
			Embedding:  embedding,
		})
	}

	if err := i.chunks.SaveChunks(chunks); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	i.logger.Debug().
		Str("collection", collection).
		Int("chunks", len(chunks)).
		Msg("Added chunks to vector collection")

	return nil
}

// Query embeds queryText and returns the texts of the topK most similar
// chunks, best match first. An empty collection yields an empty result.
func (i *Index) Query(ctx context.Context, collection string, queryText string, topK int) ([]string, error) {
	if topK <= 0 {
		return []string{}, nil
	}

	stored, err := i.chunks.GetChunks(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}
	if len(stored) == 0 {
		return []string{}, nil
	}

	queryVec, err := i.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	type scored struct {
		text  string
		score float64
	}
	results := make([]scored, 0, len(stored))
	for _, chunk := range stored {
		results = append(results, scored{
			text:  chunk.Text,
			score: cosineSimilarity(queryVec, chunk.Embedding),
		})
	}

	sort.Slice(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	if topK > len(results) {
		topK = len(results)
	}
	texts := make([]string, topK)
	for n := 0; n < topK; n++ {
		texts[n] = results[n].text
	}

	return texts, nil
}

// DeleteCollection removes the collection and all of its chunks.
// Deleting an absent collection is a no-op.
func (i *Index) DeleteCollection(ctx context.Context, name string) error {
	return i.chunks.DeleteCollection(name)
}

// ListCollections returns the names of all collections
func (i *Index) ListCollections(ctx context.Context) ([]string, error) {
	return i.chunks.ListCollections()
}

// seqFromID recovers the sequence index from a composite chunk id of the
// form {document_id}_{seq}, falling back to the insertion position.
func seqFromID(id string, fallback int) int {
	idx := strings.LastIndex(id, "_")
	if idx < 0 || idx == len(id)-1 {
		return fallback
	}
	seq, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return fallback
	}
	return seq
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either vector is zero-length or the dimensions differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for n := range a {
		dot += float64(a[n]) * float64(b[n])
		normA += float64(a[n]) * float64(a[n])
		normB += float64(b[n]) * float64(b[n])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
