package maintenance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/models"
)

type fakeDocStorage struct {
	docs map[string]bool
}

func (f *fakeDocStorage) SaveDocument(doc *models.Document) error {
	f.docs[doc.ID] = true
	return nil
}

func (f *fakeDocStorage) GetDocument(id string) (*models.Document, error) {
	if !f.docs[id] {
		return nil, fmt.Errorf("document not found: %s: %w", id, models.ErrNotFound)
	}
	return &models.Document{ID: id}, nil
}

func (f *fakeDocStorage) HasDocument(id string) (bool, error) { return f.docs[id], nil }
func (f *fakeDocStorage) DeleteDocument(id string) error {
	delete(f.docs, id)
	return nil
}
func (f *fakeDocStorage) ListDocuments() ([]*models.Document, error) { return nil, nil }
func (f *fakeDocStorage) CountDocuments() (int, error)               { return len(f.docs), nil }

type fakeIndex struct {
	collections map[string]bool
	deleteErr   map[string]error
}

func (f *fakeIndex) EnsureCollection(ctx context.Context, name string) error {
	f.collections[name] = true
	return nil
}

func (f *fakeIndex) HasCollection(ctx context.Context, name string) (bool, error) {
	return f.collections[name], nil
}

func (f *fakeIndex) AddChunks(ctx context.Context, collection string, texts []string, ids []string) error {
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, collection string, queryText string, topK int) ([]string, error) {
	return nil, nil
}

func (f *fakeIndex) DeleteCollection(ctx context.Context, name string) error {
	if err := f.deleteErr[name]; err != nil {
		return err
	}
	delete(f.collections, name)
	return nil
}

func (f *fakeIndex) ListCollections(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	return names, nil
}

func newTestReconciler(t *testing.T, schedule string) (*Reconciler, *fakeDocStorage, *fakeIndex) {
	t.Helper()
	docs := &fakeDocStorage{docs: make(map[string]bool)}
	index := &fakeIndex{collections: make(map[string]bool), deleteErr: make(map[string]error)}
	reconciler, err := NewReconciler(docs, index, &common.MaintenanceConfig{ReconcileSchedule: schedule}, arbor.NewLogger())
	require.NoError(t, err)
	return reconciler, docs, index
}

func TestReconcile_RemovesOrphans(t *testing.T) {
	reconciler, docs, index := newTestReconciler(t, "")
	ctx := context.Background()

	docs.docs["doc_kept"] = true
	index.collections["doc_kept"] = true
	index.collections["doc_orphan1"] = true
	index.collections["doc_orphan2"] = true

	removed, err := reconciler.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.True(t, index.collections["doc_kept"])
	assert.False(t, index.collections["doc_orphan1"])
	assert.False(t, index.collections["doc_orphan2"])
}

func TestReconcile_NothingToDo(t *testing.T) {
	reconciler, docs, index := newTestReconciler(t, "")

	docs.docs["doc_1"] = true
	index.collections["doc_1"] = true

	removed, err := reconciler.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.True(t, index.collections["doc_1"])
}

func TestReconcile_DeleteFailureContinues(t *testing.T) {
	reconciler, _, index := newTestReconciler(t, "")

	index.collections["doc_bad"] = true
	index.collections["doc_good"] = true
	index.deleteErr["doc_bad"] = errors.New("locked")

	removed, err := reconciler.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, index.collections["doc_bad"])
	assert.False(t, index.collections["doc_good"])
}

func TestNewReconciler_InvalidSchedule(t *testing.T) {
	docs := &fakeDocStorage{docs: make(map[string]bool)}
	index := &fakeIndex{collections: make(map[string]bool), deleteErr: make(map[string]error)}

	_, err := NewReconciler(docs, index, &common.MaintenanceConfig{ReconcileSchedule: "bogus"}, arbor.NewLogger())
	assert.Error(t, err)
}

func TestStartStop_WithoutSchedule(t *testing.T) {
	reconciler, _, _ := newTestReconciler(t, "")

	require.NoError(t, reconciler.Start())
	reconciler.Stop()
}
