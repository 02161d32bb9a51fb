package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Empty(t *testing.T) {
	assert.Empty(t, Chunk("", 500))
	assert.Empty(t, Chunk("   \n\t  ", 500))
}

func TestChunk_SingleShortText(t *testing.T) {
	chunks := Chunk("hello world", 500)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestChunk_SplitsAtWordBoundaries(t *testing.T) {
	chunks := Chunk("aaa bbb ccc ddd", 7)

	// "aaa bbb" is exactly 7 chars, "ccc ddd" likewise
	require.Len(t, chunks, 2)
	assert.Equal(t, "aaa bbb", chunks[0])
	assert.Equal(t, "ccc ddd", chunks[1])
}

func TestChunk_OversizedWordKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 30)
	chunks := Chunk("short "+long+" tail", 10)

	require.Len(t, chunks, 3)
	assert.Equal(t, "short", chunks[0])
	assert.Equal(t, long, chunks[1])
	assert.Len(t, chunks[1], 30)
	assert.Equal(t, "tail", chunks[2])
}

func TestChunk_JoinReproducesText(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
	}{
		{"short sentence", "The capital of France is Paris.", 10},
		{"paragraph", "Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore", 20},
		{"single word", "supercalifragilisticexpialidocious", 5},
		{"normalized whitespace", "spaced   out\n\nwords\there", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.size)
			expected := strings.Join(strings.Fields(tt.text), " ")
			assert.Equal(t, expected, strings.Join(chunks, " "))
		})
	}
}

func TestChunk_LengthBound(t *testing.T) {
	text := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen"
	size := 15

	for _, c := range Chunk(text, size) {
		require.NotEmpty(t, c)
		if len(c) > size {
			// Only a single oversized word may exceed the bound
			assert.NotContains(t, c, " ")
		}
	}
}

func TestChunk_ContiguousCoverage(t *testing.T) {
	text := strings.Repeat("word ", 500)
	chunks := Chunk(text, DefaultChunkSize)

	require.NotEmpty(t, chunks)
	total := 0
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize)
		total += len(strings.Fields(c))
	}
	assert.Equal(t, 500, total)
}

func TestChunk_DefaultSizeOnInvalid(t *testing.T) {
	text := strings.Repeat("abcdefghi ", 100)
	chunks := Chunk(text, 0)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DefaultChunkSize)
	}
}
