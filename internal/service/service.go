package service

import (
	"context"
	"fmt"

	"docuwrite/internal/corpus"
	"docuwrite/internal/domain"
	"docuwrite/internal/index"
	"docuwrite/internal/retriever"
)

// Service wires corpus loading, index build/persistence and retrieval into
// the operations the CLI and TUI consume.
type Service struct {
	builder   *index.Builder
	store     *index.FileStore
	retriever *retriever.Retriever
	defaultK  int
}

// New assembles a Service from its components.
func New(builder *index.Builder, store *index.FileStore, ret *retriever.Retriever, defaultK int) *Service {
	return &Service{builder: builder, store: store, retriever: ret, defaultK: defaultK}
}

// BuildIndex ingests every reference document under corpusDir, builds a
// complete index and persists it atomically. It returns the built index and
// the paths that were skipped during loading. A failed build leaves any
// existing index file untouched.
func (s *Service) BuildIndex(ctx context.Context, corpusDir string) (*index.Index, []string, error) {
	docs, skipped, err := corpus.Load(corpusDir)
	if err != nil {
		return nil, nil, err
	}
	if len(docs) == 0 {
		return nil, skipped, fmt.Errorf("no .txt or .md reference documents found in %s", corpusDir)
	}
	ix, err := s.builder.Build(ctx, docs)
	if err != nil {
		return nil, skipped, err
	}
	if err := s.store.Save(ix); err != nil {
		return nil, skipped, err
	}
	return ix, skipped, nil
}

// OpenIndex loads the persisted index. A missing or empty file yields an
// empty index; a corrupt one yields a CorruptIndexError for the caller to
// degrade on.
func (s *Service) OpenIndex() (*index.Index, error) {
	return s.store.Load()
}

// IndexPath returns the location of the persisted index.
func (s *Service) IndexPath() string { return s.store.Path() }

// Query retrieves the top-k records for the query. k <= 0 selects the
// configured default.
func (s *Service) Query(ctx context.Context, ix *index.Index, query string, k int, filter domain.DocumentType) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = s.defaultK
	}
	return s.retriever.Retrieve(ctx, ix, query, k, filter)
}
