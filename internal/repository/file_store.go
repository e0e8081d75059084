package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

// FileStore keeps the document as one indented JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewDocument(), nil
		}
		return nil, err
	}
	defer file.Close()

	doc := &domain.Document{}
	if err := json.NewDecoder(file).Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewDocument(), nil
		}
		return nil, err
	}
	doc.EnsureCollections()

	return doc, nil
}

func (s *FileStore) Save(ctx context.Context, doc *domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc.EnsureCollections()
	return atomicWriteFileJSON(s.path, doc)
}

// atomicWriteFileJSON writes to a temp file next to filePath and renames it into place,
// so readers see either the old or the new document.
func atomicWriteFileJSON(filePath string, data any) error {
	f, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tempFile := f.Name()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}
