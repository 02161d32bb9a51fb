package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/services/documents"
)

// DocumentHandler serves document upload, retrieval, and deletion
type DocumentHandler struct {
	ingestService   interfaces.IngestService
	documentService *documents.Service
	logger          arbor.ILogger
	maxUploadSize   int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(ingestService interfaces.IngestService, documentService *documents.Service, maxUploadSize int64, logger arbor.ILogger) *DocumentHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = 32 * 1024 * 1024
	}
	return &DocumentHandler{
		ingestService:   ingestService,
		documentService: documentService,
		logger:          logger,
		maxUploadSize:   maxUploadSize,
	}
}

// HandleCollection routes /api/documents: POST uploads, GET lists
func (h *DocumentHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.uploadDocument(w, r)
	case http.MethodGet:
		h.listDocuments(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleItem routes /api/documents/{id} and /api/documents/{id}/file
func (h *DocumentHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if path == "" {
		h.HandleCollection(w, r)
		return
	}

	id, rest, _ := strings.Cut(path, "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		h.getDocument(w, r, id)
	case rest == "" && r.Method == http.MethodDelete:
		h.deleteDocument(w, r, id)
	case rest == "file" && r.Method == http.MethodGet:
		h.downloadDocument(w, r, id)
	case rest == "" || rest == "file":
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		WriteError(w, http.StatusNotFound, "unknown document resource")
	}
}

// uploadDocument ingests a PDF sent as multipart form field "file"
func (h *DocumentHandler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "multipart form field 'file' is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to read uploaded file: %v", err))
		return
	}

	result, err := h.ingestService.Ingest(r.Context(), content, header.Filename)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("Document ingestion failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (h *DocumentHandler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.ListDocuments(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
}

func (h *DocumentHandler) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := h.documentService.GetDocument(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, doc)
}

// downloadDocument serves the stored raw bytes with the original filename
// as a display hint
func (h *DocumentHandler) downloadDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := h.documentService.GetDocument(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
}

func (h *DocumentHandler) deleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.documentService.DeleteDocument(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, fmt.Sprintf("document %s deleted", id))
}

// StatsHandler returns corpus statistics
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	stats, err := h.documentService.GetStats(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
