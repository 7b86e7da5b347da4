package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"docuwrite/internal/domain"
	"docuwrite/internal/embedding"
	"docuwrite/internal/index"
)

// Retriever ranks an index against a query and returns the most relevant
// chunks. The index is passed in by the caller and never mutated.
type Retriever struct {
	embedder embedding.Embedder
}

// New creates a Retriever using the given embedder for queries.
func New(emb embedding.Embedder) *Retriever {
	return &Retriever{embedder: emb}
}

// Retrieve embeds the query and returns the top-k records by cosine
// similarity, optionally restricted to a document type. Results are ordered
// by descending similarity; ties keep index insertion order. An empty index
// or empty filtered subset yields an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, ix *index.Index, query string, k int, filter domain.DocumentType) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ConfigError{Reason: "query must not be empty"}
	}
	if k <= 0 {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("k must be positive, got %d", k)}
	}
	if ix.Empty() {
		return nil, nil
	}
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(vec) != ix.Dimension {
		return nil, &domain.CorruptIndexError{
			Reason: fmt.Sprintf("query vector has dimension %d, index has %d (built with a different embedding model?)", len(vec), ix.Dimension),
		}
	}

	results := make([]domain.SearchResult, 0, ix.Len())
	for _, rec := range ix.Records {
		if filter != domain.TypeUnspecified && rec.Type != filter {
			continue
		}
		score, ok := cosine(vec, rec.Vector)
		if !ok {
			// zero-magnitude vectors are excluded, never a division error
			continue
		}
		results = append(results, domain.SearchResult{Record: rec, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// cosine returns dot(a, b) / (||a|| * ||b||). ok is false when either vector
// has zero magnitude.
func cosine(a, b []float64) (score float64, ok bool) {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}
