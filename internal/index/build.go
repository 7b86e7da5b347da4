package index

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"docuwrite/internal/chunker"
	"docuwrite/internal/domain"
	"docuwrite/internal/embedding"
)

// Builder turns a reference corpus into a complete Index. Embedding calls
// for distinct chunks run concurrently under a worker bound; the index is
// assembled only after all of them finish.
type Builder struct {
	chunker  *chunker.Window
	embedder embedding.Embedder
	workers  int
}

// NewBuilder creates a Builder. workers bounds concurrent embedding calls.
func NewBuilder(ch *chunker.Window, emb embedding.Embedder, workers int) *Builder {
	if workers <= 0 {
		workers = 1
	}
	return &Builder{chunker: ch, embedder: emb, workers: workers}
}

// Build chunks and embeds every document and returns a complete Index.
// Records keep document order, with sequential ids scoped to each document.
// Any failed embedding aborts the whole build; nothing partial escapes.
func (b *Builder) Build(ctx context.Context, docs []domain.Document) (*Index, error) {
	var records []domain.Record
	for _, doc := range docs {
		for seq, text := range b.chunker.Chunk(doc.Content) {
			records = append(records, domain.Record{
				ID:             doc.ID + ":" + strconv.Itoa(seq),
				SourceDocument: doc.ID,
				Type:           doc.Type,
				Text:           text,
			})
		}
	}
	if len(records) == 0 {
		return nil, &domain.BuildError{Err: fmt.Errorf("corpus of %d documents produced no chunks", len(docs))}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, b.workers)
	for i := range records {
		// cooperative cancellation checkpoint between chunk embeddings
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, &domain.BuildError{Err: err}
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, &domain.BuildError{Err: ctx.Err()}
		case sem <- struct{}{}:
		}
		mu.Lock()
		stop := firstErr != nil
		mu.Unlock()
		if stop {
			<-sem
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			vec, err := b.embedder.Embed(ctx, records[i].Text)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("chunk %s: %w", records[i].ID, err)
				}
				mu.Unlock()
				return
			}
			records[i].Vector = vec
		}(i)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, &domain.BuildError{Err: firstErr}
	}

	ix := &Index{
		Model:     b.embedder.Name(),
		Dimension: len(records[0].Vector),
		Records:   records,
	}
	if err := validate(ix); err != nil {
		return nil, &domain.BuildError{Err: err}
	}
	return ix, nil
}
