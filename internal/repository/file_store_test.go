package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	doc := domain.NewDocument()
	doc.Caregivers = append(doc.Caregivers, domain.Caregiver{ID: 1, Name: "Ana"})
	require.NoError(t, store.Save(context.Background(), doc))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreWritesPortugueseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), &domain.Document{}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"acompanhantes":[],"turnos":[],"registrosAcompanhamento":[]}`, string(raw))
}

func TestFileStoreEmptyAndPartialFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	store, err := NewFileStore(empty)
	require.NoError(t, err)
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewDocument(), doc)

	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"acompanhantes":[{"id":1,"nome":"Ana"}]}`), 0o644))
	store, err = NewFileStore(partial)
	require.NoError(t, err)
	doc, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Caregivers, 1)
	assert.NotNil(t, doc.Shifts)
	assert.NotNil(t, doc.CareLogEntries)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"acompanhantes":`), 0o644))
	store, err = NewFileStore(broken)
	require.NoError(t, err)
	_, err = store.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, domain.NewDocument()), context.Canceled)
}
