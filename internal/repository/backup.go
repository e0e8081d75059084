package repository

import (
	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (r *Repository) ExportDocument() (*domain.Document, error) {
	return r.read()
}

// RestoreDocument replaces the stored document wholesale.
func (r *Repository) RestoreDocument(doc *domain.Document) error {
	return r.mutate(func(current *domain.Document) error {
		doc.EnsureCollections()
		*current = *doc
		return nil
	})
}
