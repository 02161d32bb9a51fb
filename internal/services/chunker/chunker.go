// Package chunker splits extracted document text into bounded-size,
// word-aligned segments for embedding and retrieval.
package chunker

import "strings"

// DefaultChunkSize is the target chunk length in characters.
const DefaultChunkSize = 500

// Chunk splits text into segments of at most chunkSize characters,
// accumulating whole words and never splitting mid-word. A single
// word longer than chunkSize becomes its own oversized chunk.
// Empty or whitespace-only input yields an empty slice.
func Chunk(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	chunks := make([]string, 0, len(text)/chunkSize+1)
	current := make([]string, 0, 64)
	size := 0

	for _, word := range words {
		// Account for the joining space when the chunk is non-empty
		add := len(word)
		if len(current) > 0 {
			add++
		}
		if len(current) > 0 && size+add > chunkSize {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			size = 0
			add = len(word)
		}
		current = append(current, word)
		size += add
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
