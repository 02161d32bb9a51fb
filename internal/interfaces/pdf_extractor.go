package interfaces

import "context"

// PDFExtractor converts raw PDF bytes into page-level text.
type PDFExtractor interface {
	// ExtractPages returns one entry per page in document order. A page
	// that yields no text contributes an empty string rather than an
	// error; an unreadable document returns an error.
	ExtractPages(ctx context.Context, content []byte) ([]string, error)
}
