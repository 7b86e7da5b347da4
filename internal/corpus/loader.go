package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docuwrite/internal/domain"
)

// Load reads every .txt and .md file under dir as a reference document.
// Document ids are paths relative to dir, so the corpus layout stays visible
// in record provenance. Other file types (PDFs included) are expected to be
// converted to text before ingestion and are skipped here.
func Load(dir string) ([]domain.Document, []string, error) {
	var docs []domain.Document
	var skipped []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
		default:
			skipped = append(skipped, path)
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			skipped = append(skipped, path)
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, domain.Document{
			ID:      filepath.ToSlash(rel),
			Path:    path,
			Type:    InferType(rel),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	// WalkDir order is lexical already, but keep the guarantee explicit
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, skipped, nil
}

// InferType guesses the document type from the file's name or any parent
// directory, e.g. "mfr_examples.txt" or "opord/ncls.txt".
func InferType(relPath string) domain.DocumentType {
	for _, part := range strings.Split(strings.ToLower(filepath.ToSlash(relPath)), "/") {
		if strings.HasPrefix(part, "mfr") {
			return domain.TypeMFR
		}
		if strings.HasPrefix(part, "opord") {
			return domain.TypeOPORD
		}
	}
	return domain.TypeUnspecified
}
