package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"pathmatch/internal/database"
	"pathmatch/internal/domain/scoring"
	"pathmatch/internal/embedding"
)

// PostgresEmbeddingStore is the persistent tier of the embedding cache,
// backed by a pgvector column.
type PostgresEmbeddingStore struct {
	db database.DB
}

func NewPostgresEmbeddingStore(db database.DB) *PostgresEmbeddingStore {
	return &PostgresEmbeddingStore{db: db}
}

func (s *PostgresEmbeddingStore) Load(ctx context.Context, entityID uuid.UUID, kind scoring.VectorKind) (*embedding.StoredVector, error) {
	row := s.db.QueryRow(ctx, `
SELECT source_hash, vector FROM embeddings WHERE entity_id = $1 AND kind = $2`,
		entityID, string(kind))

	var hash string
	var vec pgvector.Vector
	if err := row.Scan(&hash, &vec); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &embedding.StoredVector{Hash: hash, Values: vec.Slice()}, nil
}

func (s *PostgresEmbeddingStore) Save(ctx context.Context, entityID uuid.UUID, kind scoring.VectorKind, hash string, values []float32) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO embeddings (entity_id, kind, source_hash, vector, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (entity_id, kind)
DO UPDATE SET source_hash = EXCLUDED.source_hash, vector = EXCLUDED.vector, updated_at = now()`,
		entityID, string(kind), hash, pgvector.NewVector(values))
	return err
}

func (s *PostgresEmbeddingStore) DeleteByEntity(ctx context.Context, entityID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM embeddings WHERE entity_id = $1`, entityID)
	return err
}
