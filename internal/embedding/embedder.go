package embedding

import "context"

// Embedder converts free text into a numeric vector representation.
// All vectors produced by one embedder share the same dimensionality.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}
