package repository

import (
	"context"
	"errors"
	"time"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("registro não encontrado")
	ErrCaregiverNotFound = errors.New("acompanhante não encontrado")
)

// Repository reads and rewrites the whole household document. Mutations are serialized
// through the locker so concurrent writers cannot drop each other's changes.
type Repository struct {
	cfg    *config.Config
	store  DocumentStore
	locker Locker
	now    func() time.Time
}

func NewRepository(cfg *config.Config, store DocumentStore, locker Locker) *Repository {
	return &Repository{
		cfg:    cfg,
		store:  store,
		locker: locker,
		now:    time.Now,
	}
}

func (r *Repository) queryTimeout() time.Duration {
	return time.Duration(r.cfg.Database.QueryTimeout) * time.Second
}

func (r *Repository) read() (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.queryTimeout())
	defer cancel()

	return r.store.Load(ctx)
}

// mutate runs fn on a freshly loaded document and saves it when fn succeeds.
func (r *Repository) mutate(fn func(doc *domain.Document) error) error {
	timeout := r.queryTimeout() + time.Duration(r.cfg.Lock.WaitTimeout)*time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	unlock, err := r.locker.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return r.store.Save(ctx, doc)
}
