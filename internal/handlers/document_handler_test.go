package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/ternarybob/lectio/internal/services/documents"
)

type fakeIngest struct {
	result *interfaces.IngestResult
	err    error

	gotContent  []byte
	gotFilename string
}

func (f *fakeIngest) Ingest(ctx context.Context, content []byte, filename string) (*interfaces.IngestResult, error) {
	f.gotContent = content
	f.gotFilename = filename
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeDocStorage struct {
	docs map[string]*models.Document
}

func newFakeDocStorage() *fakeDocStorage {
	return &fakeDocStorage{docs: make(map[string]*models.Document)}
}

func (f *fakeDocStorage) SaveDocument(doc *models.Document) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocStorage) GetDocument(id string) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found: %s: %w", id, models.ErrNotFound)
	}
	return doc, nil
}

func (f *fakeDocStorage) HasDocument(id string) (bool, error) {
	_, ok := f.docs[id]
	return ok, nil
}

func (f *fakeDocStorage) DeleteDocument(id string) error {
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("document not found: %s: %w", id, models.ErrNotFound)
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeDocStorage) ListDocuments() ([]*models.Document, error) {
	result := make([]*models.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		result = append(result, doc)
	}
	return result, nil
}

func (f *fakeDocStorage) CountDocuments() (int, error) { return len(f.docs), nil }

type fakeVectorIndex struct {
	collections map[string]bool
}

func newFakeVectorIndex() *fakeVectorIndex {
	return &fakeVectorIndex{collections: make(map[string]bool)}
}

func (f *fakeVectorIndex) EnsureCollection(ctx context.Context, name string) error {
	f.collections[name] = true
	return nil
}

func (f *fakeVectorIndex) HasCollection(ctx context.Context, name string) (bool, error) {
	return f.collections[name], nil
}

func (f *fakeVectorIndex) AddChunks(ctx context.Context, collection string, texts []string, ids []string) error {
	return nil
}

func (f *fakeVectorIndex) Query(ctx context.Context, collection string, queryText string, topK int) ([]string, error) {
	return nil, nil
}

func (f *fakeVectorIndex) DeleteCollection(ctx context.Context, name string) error {
	delete(f.collections, name)
	return nil
}

func (f *fakeVectorIndex) ListCollections(ctx context.Context) ([]string, error) { return nil, nil }

func newTestDocumentHandler(ingestSvc *fakeIngest) (*DocumentHandler, *fakeDocStorage) {
	storage := newFakeDocStorage()
	docService := documents.NewService(storage, newFakeVectorIndex(), arbor.NewLogger())
	return NewDocumentHandler(ingestSvc, docService, 0, arbor.NewLogger()), storage
}

// multipartBody builds a multipart form with a single "file" field
func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	ingestSvc := &fakeIngest{result: &interfaces.IngestResult{
		DocumentID: "doc_1",
		FileName:   "report.pdf",
		PageCount:  2,
		ChunkCount: 5,
	}}
	handler, _ := newTestDocumentHandler(ingestSvc)

	body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.HandleCollection(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result interfaces.IngestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "doc_1", result.DocumentID)
	assert.Equal(t, "report.pdf", result.FileName)

	assert.Equal(t, []byte("%PDF-1.4"), ingestSvc.gotContent)
	assert.Equal(t, "report.pdf", ingestSvc.gotFilename)
}

func TestUpload_MissingFileField(t *testing.T) {
	handler, _ := newTestDocumentHandler(&fakeIngest{})

	body, contentType := multipartBody(t, "document", "report.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.HandleCollection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_ValidationErrorMapsTo400(t *testing.T) {
	ingestSvc := &fakeIngest{err: fmt.Errorf("file must be a PDF: %w", models.ErrValidation)}
	handler, _ := newTestDocumentHandler(ingestSvc)

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.HandleCollection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_ExtractionErrorMapsTo400(t *testing.T) {
	ingestSvc := &fakeIngest{err: fmt.Errorf("no text extracted: %w", models.ErrExtraction)}
	handler, _ := newTestDocumentHandler(ingestSvc)

	body, contentType := multipartBody(t, "file", "scan.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.HandleCollection(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDocuments(t *testing.T) {
	handler, storage := newTestDocumentHandler(&fakeIngest{})
	require.NoError(t, storage.SaveDocument(&models.Document{ID: "doc_1", FileName: "a.pdf"}))
	require.NoError(t, storage.SaveDocument(&models.Document{ID: "doc_2", FileName: "b.pdf"}))

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	handler.HandleCollection(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestGetDocument(t *testing.T) {
	handler, storage := newTestDocumentHandler(&fakeIngest{})
	require.NoError(t, storage.SaveDocument(&models.Document{ID: "doc_1", FileName: "a.pdf", Content: []byte("secret")}))

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc_1", nil)
	rec := httptest.NewRecorder()
	handler.HandleItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a.pdf")
	// Raw content is never serialized in metadata responses
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestGetDocument_NotFound(t *testing.T) {
	handler, _ := newTestDocumentHandler(&fakeIngest{})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc_missing", nil)
	rec := httptest.NewRecorder()
	handler.HandleItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadDocument(t *testing.T) {
	handler, storage := newTestDocumentHandler(&fakeIngest{})
	require.NoError(t, storage.SaveDocument(&models.Document{ID: "doc_1", FileName: "report.pdf", Content: []byte("%PDF-bytes")}))

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc_1/file", nil)
	rec := httptest.NewRecorder()
	handler.HandleItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report.pdf")
	assert.Equal(t, "%PDF-bytes", rec.Body.String())
}

func TestDeleteDocument(t *testing.T) {
	handler, storage := newTestDocumentHandler(&fakeIngest{})
	require.NoError(t, storage.SaveDocument(&models.Document{ID: "doc_1", FileName: "a.pdf"}))

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/doc_1", nil)
	rec := httptest.NewRecorder()
	handler.HandleItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	has, _ := storage.HasDocument("doc_1")
	assert.False(t, has)
}

func TestDeleteDocument_NotFound(t *testing.T) {
	handler, _ := newTestDocumentHandler(&fakeIngest{})

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/doc_missing", nil)
	rec := httptest.NewRecorder()
	handler.HandleItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleItem_UnknownSubresource(t *testing.T) {
	handler, _ := newTestDocumentHandler(&fakeIngest{})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc_1/extra/path", nil)
	rec := httptest.NewRecorder()
	handler.HandleItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
