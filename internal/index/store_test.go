package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuwrite/internal/domain"
)

func sampleIndex() *Index {
	return &Index{
		Model:     "fake",
		Dimension: 3,
		Records: []domain.Record{
			{ID: "a.txt:0", SourceDocument: "a.txt", Type: domain.TypeMFR, Text: "first chunk", Vector: []float64{1, 0, 0}},
			{ID: "a.txt:1", SourceDocument: "a.txt", Type: domain.TypeMFR, Text: "second chunk", Vector: []float64{0, 1, 0}},
			{ID: "b.txt:0", SourceDocument: "b.txt", Type: domain.TypeOPORD, Text: "third chunk", Vector: []float64{0, 0, 1}},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "rag_index", "index.json"))
	want := sampleIndex()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_Overwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "index.json"))
	require.NoError(t, store.Save(sampleIndex()))

	smaller := &Index{
		Model:     "fake",
		Dimension: 2,
		Records: []domain.Record{
			{ID: "c.txt:0", SourceDocument: "c.txt", Type: domain.TypeUnspecified, Text: "only", Vector: []float64{1, 1}},
		},
	}
	require.NoError(t, store.Save(smaller))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, smaller, got)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "index.json"))
	require.NoError(t, store.Save(sampleIndex()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.json", entries[0].Name())
}

func TestLoad_MissingFileYieldsEmptyIndex(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	ix, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ix.Empty())
}

func TestLoad_EmptyFileYieldsEmptyIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ix, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.True(t, ix.Empty())
}

func TestLoad_CorruptCases(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "{{{"},
		{"wrong version", `{"index_version":99,"model":"fake","dimension":2,"records":[]}`},
		{"duplicate ids", `{"index_version":1,"model":"fake","dimension":1,"records":[
			{"id":"x:0","source_document":"x","document_type":"mfr","text":"a","vector":[1]},
			{"id":"x:0","source_document":"x","document_type":"mfr","text":"b","vector":[1]}]}`},
		{"mixed dimensions", `{"index_version":1,"model":"fake","dimension":2,"records":[
			{"id":"x:0","source_document":"x","document_type":"mfr","text":"a","vector":[1,2]},
			{"id":"x:1","source_document":"x","document_type":"mfr","text":"b","vector":[1]}]}`},
		{"missing text", `{"index_version":1,"model":"fake","dimension":1,"records":[
			{"id":"x:0","source_document":"x","document_type":"mfr","text":"","vector":[1]}]}`},
		{"unknown document type", `{"index_version":1,"model":"fake","dimension":1,"records":[
			{"id":"x:0","source_document":"x","document_type":"memo","text":"a","vector":[1]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "index.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))

			_, err := NewFileStore(path).Load()
			require.Error(t, err)
			var corrupt *domain.CorruptIndexError
			assert.True(t, errors.As(err, &corrupt), "want CorruptIndexError, got %T: %v", err, err)
		})
	}
}
