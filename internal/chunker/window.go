package chunker

import (
	"fmt"

	"docuwrite/internal/domain"
)

// Default policy values, sized for reference documents of a few pages.
const (
	DefaultChunkSize = 800
	DefaultOverlap   = 200
)

// Window splits text into fixed-size character windows where consecutive
// windows share an overlap, so concepts spanning a boundary are not lost.
type Window struct {
	chunkSize int
	overlap   int
}

// New validates the chunking parameters and returns a Window chunker.
func New(chunkSize, overlap int) (*Window, error) {
	if chunkSize <= 0 {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("chunk_size must be positive, got %d", chunkSize)}
	}
	if overlap < 0 {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("overlap must not be negative, got %d", overlap)}
	}
	if overlap >= chunkSize {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("overlap (%d) must be smaller than chunk_size (%d)", overlap, chunkSize)}
	}
	return &Window{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits text into ordered windows covering the entire input.
// Input shorter than the chunk size yields exactly one chunk equal to the
// input. The trailing partial chunk is kept. Empty input yields no chunks.
func (w *Window) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := w.chunkSize - w.overlap
	chunks := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + w.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// ChunkSize returns the maximum number of characters per chunk.
func (w *Window) ChunkSize() int { return w.chunkSize }

// Overlap returns the number of characters shared by consecutive chunks.
func (w *Window) Overlap() int { return w.overlap }
