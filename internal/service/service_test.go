package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuwrite/internal/chunker"
	"docuwrite/internal/domain"
	"docuwrite/internal/index"
	"docuwrite/internal/retriever"
)

// fakeEmbedder derives a deterministic vector from the text, optionally
// failing on texts containing a marker.
type fakeEmbedder struct {
	dim      int
	failOn   string
	failWith error
}

func (f *fakeEmbedder) Name() string   { return "fake" }
func (f *fakeEmbedder) Dimension() int { return f.dim }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, f.failWith
	}
	vec := make([]float64, f.dim)
	for i, r := range text {
		vec[i%f.dim] += float64(r) / 1000
	}
	return vec, nil
}

func newTestService(t *testing.T, emb *fakeEmbedder, indexPath string) *Service {
	t.Helper()
	ch, err := chunker.New(10, 2)
	require.NoError(t, err)
	return New(index.NewBuilder(ch, emb, 2), index.NewFileStore(indexPath), retriever.New(emb), 5)
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// 19 chars -> 3 chunks at size 10 / overlap 2; 15 chars -> 2 chunks
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mfr_bed_rest_sop.txt"), []byte("bed rest sop mfr ok"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "opord_ncls.txt"), []byte("ncls opord body"), 0o644))
	return dir
}

func TestBuildIndex_TwoDocumentScenario(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	indexPath := filepath.Join(t.TempDir(), "index.json")
	svc := newTestService(t, emb, indexPath)

	ix, skipped, err := svc.BuildIndex(context.Background(), writeCorpus(t))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Equal(t, 5, ix.Len())

	counts := map[domain.DocumentType]int{}
	for _, rec := range ix.Records {
		counts[rec.Type]++
	}
	assert.Equal(t, 3, counts[domain.TypeMFR])
	assert.Equal(t, 2, counts[domain.TypeOPORD])

	// persisted and reloadable
	loaded, err := svc.OpenIndex()
	require.NoError(t, err)
	assert.Equal(t, ix, loaded)

	// filtered retrieval returns only MFR chunks, ranked descending
	results, err := svc.Query(context.Background(), loaded, "morale program request", 2, domain.TypeMFR)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, domain.TypeMFR, res.Record.Type)
		assert.Equal(t, "mfr_bed_rest_sop.txt", res.Record.SourceDocument)
	}
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestBuildIndex_FailureLeavesExistingIndexUntouched(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.json")
	corpusDir := writeCorpus(t)

	// first build succeeds
	svc := newTestService(t, &fakeEmbedder{dim: 4}, indexPath)
	_, _, err := svc.BuildIndex(context.Background(), corpusDir)
	require.NoError(t, err)
	before, err := os.ReadFile(indexPath)
	require.NoError(t, err)

	// rebuild with a provider that exhausts retries on an opord chunk
	failing := &fakeEmbedder{
		dim:      4,
		failOn:   "opord",
		failWith: &domain.ProviderError{Attempts: 5, Err: errors.New("rate limited")},
	}
	svc = newTestService(t, failing, indexPath)
	_, _, err = svc.BuildIndex(context.Background(), corpusDir)
	require.Error(t, err)
	var buildErr *domain.BuildError
	assert.True(t, errors.As(err, &buildErr), "want BuildError, got %T", err)

	after, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed build must not modify the persisted index")
}

func TestBuildIndex_FailureCreatesNoIndex(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index.json")
	failing := &fakeEmbedder{
		dim:      4,
		failOn:   "mfr",
		failWith: &domain.ProviderError{Attempts: 5, Err: errors.New("rate limited")},
	}
	svc := newTestService(t, failing, indexPath)

	_, _, err := svc.BuildIndex(context.Background(), writeCorpus(t))
	require.Error(t, err)
	_, statErr := os.Stat(indexPath)
	assert.True(t, os.IsNotExist(statErr), "no index file may be created by a failed build")
}

func TestBuildIndex_EmptyCorpusDir(t *testing.T) {
	svc := newTestService(t, &fakeEmbedder{dim: 4}, filepath.Join(t.TempDir(), "index.json"))
	_, _, err := svc.BuildIndex(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestQuery_EmptyIndexDegradesToNoResults(t *testing.T) {
	svc := newTestService(t, &fakeEmbedder{dim: 4}, filepath.Join(t.TempDir(), "absent.json"))
	ix, err := svc.OpenIndex()
	require.NoError(t, err)
	require.True(t, ix.Empty())

	results, err := svc.Query(context.Background(), ix, "anything", 3, domain.TypeUnspecified)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_DefaultK(t *testing.T) {
	emb := &fakeEmbedder{dim: 4}
	indexPath := filepath.Join(t.TempDir(), "index.json")
	svc := newTestService(t, emb, indexPath)

	ix, _, err := svc.BuildIndex(context.Background(), writeCorpus(t))
	require.NoError(t, err)

	results, err := svc.Query(context.Background(), ix, "anything", 0, domain.TypeUnspecified)
	require.NoError(t, err)
	assert.Len(t, results, 5) // default k from config
}
