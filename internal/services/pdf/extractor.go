// -----------------------------------------------------------------------
// PDF Extractor Service - Extract text content from PDF documents
// Uses pdfcpu for Go-native PDF processing
// -----------------------------------------------------------------------

package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
)

// Extractor implements the PDFExtractor interface using pdfcpu
type Extractor struct {
	logger  arbor.ILogger
	tempDir string
}

// Compile-time interface assertion
var _ interfaces.PDFExtractor = (*Extractor)(nil)

// NewExtractor creates a new PDF extractor service
func NewExtractor(logger arbor.ILogger) *Extractor {
	// Create a temp directory for PDF processing
	tempDir := filepath.Join(os.TempDir(), "lectio-pdf")
	os.MkdirAll(tempDir, 0755)

	return &Extractor{
		logger:  logger,
		tempDir: tempDir,
	}
}

// ExtractPages extracts text content by page from raw PDF bytes.
// The result has one entry per page in document order; a page that
// yields no text contributes an empty string.
func (e *Extractor) ExtractPages(ctx context.Context, content []byte) ([]string, error) {
	// pdfcpu works on files, so stage the bytes in the temp dir.
	// Unique names keep concurrent extractions apart.
	token := uuid.New().String()
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("extract_%s.pdf", token))
	if err := os.WriteFile(tempFile, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(e.tempDir, fmt.Sprintf("pages_%s", token))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to extract PDF content, returning empty pages")
		// Extraction failure on a readable PDF yields empty pages
		// rather than an error so callers can decide how to react
		return make([]string, pageCount), nil
	}

	// Read extracted content files, keyed by page number
	pageTexts := make(map[int]string)
	files, _ := os.ReadDir(outDir)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		pageNum, ok := pageNumberFromFileName(file.Name())
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = string(data)
	}

	// Build pages in order, empty text where nothing was extracted
	pages := make([]string, 0, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		pages = append(pages, pageTexts[pageNum])
	}

	return pages, nil
}

// pageNumberFromFileName recovers the page number from a pdfcpu content
// file name of the form <basename>_Content_page_<N>.txt.
func pageNumberFromFileName(name string) (int, bool) {
	const marker = "Content_page_"
	idx := strings.LastIndex(name, marker)
	if idx < 0 {
		return 0, false
	}
	digits := strings.TrimSuffix(name[idx+len(marker):], filepath.Ext(name))
	pageNum, err := strconv.Atoi(digits)
	if err != nil || pageNum < 1 {
		return 0, false
	}
	return pageNum, true
}

// PageCount returns the number of pages in the given PDF bytes
func (e *Extractor) PageCount(ctx context.Context, content []byte) (int, error) {
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("count_%s.pdf", uuid.New().String()))
	if err := os.WriteFile(tempFile, content, 0644); err != nil {
		return 0, fmt.Errorf("failed to write temp PDF file: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return pdfCtx.PageCount, nil
}
