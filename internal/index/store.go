package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docuwrite/internal/domain"
)

// FileStore persists an Index as a single JSON file. Saves are atomic:
// readers never observe a half-written index.
type FileStore struct {
	path string
}

// NewFileStore creates a store persisting to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the index file location.
func (s *FileStore) Path() string { return s.path }

type persistedRecord struct {
	ID             string    `json:"id"`
	SourceDocument string    `json:"source_document"`
	DocumentType   string    `json:"document_type"`
	Text           string    `json:"text"`
	Vector         []float64 `json:"vector"`
}

type persistedIndex struct {
	IndexVersion int               `json:"index_version"`
	Model        string            `json:"model"`
	Dimension    int               `json:"dimension"`
	Records      []persistedRecord `json:"records"`
}

// Save serializes the index, overwriting any existing file at the store's
// path. The write goes to a temp file first and is renamed into place.
func (s *FileStore) Save(ix *Index) error {
	out := persistedIndex{
		IndexVersion: Version,
		Model:        ix.Model,
		Dimension:    ix.Dimension,
		Records:      make([]persistedRecord, len(ix.Records)),
	}
	for i, rec := range ix.Records {
		out.Records[i] = persistedRecord{
			ID:             rec.ID,
			SourceDocument: rec.SourceDocument,
			DocumentType:   string(rec.Type),
			Text:           rec.Text,
			Vector:         rec.Vector,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load deserializes the persisted index. An absent or empty file yields an
// empty Index so retrieval can run in degraded mode. A file that fails
// validation yields a CorruptIndexError.
func (s *FileStore) Load() (*Index, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Index{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return &Index{}, nil
	}
	var in persistedIndex
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &domain.CorruptIndexError{Reason: fmt.Sprintf("%s: %v", s.path, err)}
	}
	if in.IndexVersion != Version {
		return nil, &domain.CorruptIndexError{Reason: fmt.Sprintf("%s: unsupported index_version %d", s.path, in.IndexVersion)}
	}
	ix := &Index{
		Model:     in.Model,
		Dimension: in.Dimension,
		Records:   make([]domain.Record, len(in.Records)),
	}
	for i, rec := range in.Records {
		typ, err := domain.ParseDocumentType(rec.DocumentType)
		if err != nil {
			return nil, &domain.CorruptIndexError{Reason: fmt.Sprintf("%s: record %q: %v", s.path, rec.ID, err)}
		}
		ix.Records[i] = domain.Record{
			ID:             rec.ID,
			SourceDocument: rec.SourceDocument,
			Type:           typ,
			Text:           rec.Text,
			Vector:         rec.Vector,
		}
	}
	if err := validate(ix); err != nil {
		return nil, &domain.CorruptIndexError{Reason: fmt.Sprintf("%s: %v", s.path, err)}
	}
	return ix, nil
}
