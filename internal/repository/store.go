package repository

import (
	"context"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

type DocumentStore interface {
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}
