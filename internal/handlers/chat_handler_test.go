package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
)

type fakeChatService struct {
	resp *interfaces.ChatResponse
	err  error
}

func (f *fakeChatService) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeChatService) HealthCheck(ctx context.Context) error { return nil }

func postChat(t *testing.T, handler *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)
	return rec
}

func TestChatHandler_Success(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{resp: &interfaces.ChatResponse{Response: "Paris."}}, arbor.NewLogger())

	rec := postChat(t, handler, `{"document_id":"doc_1","messages":[{"role":"user","content":"capital of France?"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp interfaces.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Paris.", resp.Response)
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{}, arbor.NewLogger())

	rec := postChat(t, handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_MissingFields(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{}, arbor.NewLogger())

	tests := []struct {
		name string
		body string
	}{
		{"missing document_id", `{"messages":[{"role":"user","content":"hi"}]}`},
		{"empty messages", `{"document_id":"doc_1","messages":[]}`},
		{"bad role", `{"document_id":"doc_1","messages":[{"role":"robot","content":"hi"}]}`},
		{"empty content", `{"document_id":"doc_1","messages":[{"role":"user","content":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postChat(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("no user message found: %w", models.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("never uploaded: %w", models.ErrNotFound), http.StatusNotFound},
		{"upstream", fmt.Errorf("model call failed: %w", models.ErrUpstream), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewChatHandler(&fakeChatService{err: tt.err}, arbor.NewLogger())
			rec := postChat(t, handler, `{"document_id":"doc_1","messages":[{"role":"user","content":"hi"}]}`)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	handler := NewChatHandler(&fakeChatService{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusForError(fmt.Errorf("x: %w", models.ErrValidation)))
	assert.Equal(t, http.StatusBadRequest, StatusForError(fmt.Errorf("x: %w", models.ErrExtraction)))
	assert.Equal(t, http.StatusNotFound, StatusForError(fmt.Errorf("x: %w", models.ErrNotFound)))
	assert.Equal(t, http.StatusBadGateway, StatusForError(fmt.Errorf("x: %w", models.ErrUpstream)))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(fmt.Errorf("plain failure")))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, http.StatusBadRequest, "bad input"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bad input"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
