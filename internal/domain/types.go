package domain

import "fmt"

// DocumentType tags a reference document with the kind of output it exemplifies.
type DocumentType string

const (
	TypeMFR         DocumentType = "mfr"
	TypeOPORD       DocumentType = "opord"
	TypeUnspecified DocumentType = "unspecified"
)

// ParseDocumentType converts a string tag into a DocumentType.
// An empty string maps to TypeUnspecified.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case TypeMFR:
		return TypeMFR, nil
	case TypeOPORD:
		return TypeOPORD, nil
	case TypeUnspecified, "":
		return TypeUnspecified, nil
	default:
		return TypeUnspecified, fmt.Errorf("unknown document type %q", s)
	}
}

// Document represents a single reference file loaded for ingestion.
type Document struct {
	ID      string
	Path    string
	Type    DocumentType
	Content string
}

// Record is the unit of retrieval: one embedded chunk of a reference document.
// Records are created during ingestion and immutable thereafter.
type Record struct {
	ID             string
	SourceDocument string
	Type           DocumentType
	Text           string
	Vector         []float64
}

// SearchResult pairs a record with its cosine similarity to the query.
type SearchResult struct {
	Record Record
	Score  float64
}
