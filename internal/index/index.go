package index

import (
	"fmt"

	"docuwrite/internal/domain"
)

// Version identifies the persisted index schema. Bump it when the record
// layout or embedding contract changes.
const Version = 1

// Index is an immutable, ordered collection of embedded chunk records.
// It is created by a build, wholly replaced by rebuilds, and safe for
// concurrent readers once constructed.
type Index struct {
	Model     string
	Dimension int
	Records   []domain.Record
}

// Len returns the number of records in the index.
func (ix *Index) Len() int { return len(ix.Records) }

// Empty reports whether the index holds no records.
func (ix *Index) Empty() bool { return len(ix.Records) == 0 }

// validate checks id uniqueness and uniform vector dimensionality.
func validate(ix *Index) error {
	seen := make(map[string]struct{}, len(ix.Records))
	for i, rec := range ix.Records {
		if rec.ID == "" {
			return fmt.Errorf("record %d has empty id", i)
		}
		if _, dup := seen[rec.ID]; dup {
			return fmt.Errorf("duplicate record id %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}
		if rec.Text == "" {
			return fmt.Errorf("record %q has empty text", rec.ID)
		}
		if len(rec.Vector) == 0 {
			return fmt.Errorf("record %q has empty vector", rec.ID)
		}
		if len(rec.Vector) != ix.Dimension {
			return fmt.Errorf("record %q has dimension %d, index has %d", rec.ID, len(rec.Vector), ix.Dimension)
		}
	}
	return nil
}
