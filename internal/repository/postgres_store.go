package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

// PostgresStore keeps each household document as a jsonb row.
type PostgresStore struct {
	dbpool *sql.DB
	name   string
}

func NewPostgresStore(dbpool *sql.DB, name string) *PostgresStore {
	return &PostgresStore{
		dbpool: dbpool,
		name:   name,
	}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			version    INTEGER NOT NULL DEFAULT 1,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := s.dbpool.ExecContext(ctx, query)
	return err
}

func (s *PostgresStore) Load(ctx context.Context) (*domain.Document, error) {
	query := `SELECT body FROM documents WHERE name = $1`

	var body []byte
	if err := s.dbpool.QueryRowContext(ctx, query, s.name).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewDocument(), nil
		}
		return nil, err
	}

	doc := &domain.Document{}
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, err
	}
	doc.EnsureCollections()

	return doc, nil
}

func (s *PostgresStore) Save(ctx context.Context, doc *domain.Document) error {
	doc.EnsureCollections()
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (name, body)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET
			body = EXCLUDED.body,
			version = documents.version + 1,
			updated_at = now()
	`
	_, err = s.dbpool.ExecContext(ctx, query, s.name, body)
	return err
}
