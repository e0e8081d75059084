package repository

import (
	"github.com/escala-acompanhantes/backend/internal/domain"
)

func (r *Repository) GetAllCareLogEntries() ([]domain.CareLogEntry, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	return doc.CareLogEntries, nil
}

func (r *Repository) GetCareLogEntryByID(id int64) (*domain.CareLogEntry, error) {
	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	i := doc.CareLogIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	return &doc.CareLogEntries[i], nil
}

// CreateCareLogEntry sets the id and creation timestamp on e.
func (r *Repository) CreateCareLogEntry(e *domain.CareLogEntry) error {
	return r.mutate(func(doc *domain.Document) error {
		e.ID = doc.NextCareLogID()
		e.CreatedAt = r.now().UTC()
		doc.CareLogEntries = append(doc.CareLogEntries, *e)
		return nil
	})
}

func (r *Repository) DeleteCareLogEntry(id int64) error {
	return r.mutate(func(doc *domain.Document) error {
		i := doc.CareLogIndex(id)
		if i < 0 {
			return ErrNotFound
		}
		doc.CareLogEntries = append(doc.CareLogEntries[:i], doc.CareLogEntries[i+1:]...)
		return nil
	})
}
