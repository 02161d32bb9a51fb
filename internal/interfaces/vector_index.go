package interfaces

import "context"

// VectorIndex manages per-document vector collections and similarity
// queries over them. Collections are named after document IDs; chunk IDs
// use the composite form {document_id}_{seq}.
type VectorIndex interface {
	// EnsureCollection creates the named collection if it does not exist.
	// Creating an existing collection is a no-op.
	EnsureCollection(ctx context.Context, name string) error

	// HasCollection reports whether the named collection exists. A
	// collection with zero chunks still exists.
	HasCollection(ctx context.Context, name string) (bool, error)

	// AddChunks embeds and stores texts in the collection. texts and ids
	// are positionally paired and must be the same length.
	AddChunks(ctx context.Context, collection string, texts []string, ids []string) error

	// Query embeds queryText and returns the texts of the topK most
	// similar chunks in the collection, best match first. Fewer than topK
	// results are returned when the collection holds fewer chunks.
	Query(ctx context.Context, collection string, queryText string, topK int) ([]string, error)

	// DeleteCollection removes the collection and all of its chunks.
	// Deleting an absent collection is a no-op.
	DeleteCollection(ctx context.Context, name string) error

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)
}
