package ingest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/services/pdf"
)

// buildPDF generates an in-memory PDF with one page per text entry
func buildPDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pageTexts {
		doc.AddPage()
		doc.MultiCell(0, 10, text, "", "L", false)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// Runs the real pdfcpu extractor through the full ingestion pipeline.
func TestIngest_RealExtractor(t *testing.T) {
	docs := newFakeDocStorage()
	index := newFakeIndex()
	ragConfig := &common.RAGConfig{ChunkSize: 500, TopK: 3, BatchSize: 100}
	extractor := pdf.NewExtractor(arbor.NewLogger())
	service := NewService(extractor, docs, index, ragConfig, arbor.NewLogger())

	content := buildPDF(t, "The capital of France is Paris.")

	result, err := service.Ingest(context.Background(), content, "france.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, result.PageCount)
	require.Greater(t, result.ChunkCount, 0)

	assert.True(t, index.collections[result.DocumentID])
	require.NotEmpty(t, index.addCalls)

	indexed := strings.Join(index.addCalls[0].texts, " ")
	assert.Contains(t, indexed, "The capital of France is Paris.")
}
