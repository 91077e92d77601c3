package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pathmatch/internal/database"
)

// ScoreRecord is one persisted scoring outcome for a persona/job pair.
type ScoreRecord struct {
	ID           uuid.UUID
	PersonaID    uuid.UUID
	JobID        uuid.UUID
	Passed       bool
	FitTotal     *int
	StretchTotal *int
	GhostScore   *int
	Degraded     bool
	Detail       json.RawMessage
	ScoredAt     time.Time
}

type ScoreRepository interface {
	SaveBatch(ctx context.Context, records []ScoreRecord) error
	ListByPersona(ctx context.Context, personaID uuid.UUID, limit int) ([]ScoreRecord, error)
	DeleteByPersona(ctx context.Context, personaID uuid.UUID) error
}

type PostgresScoreRepository struct {
	db database.DB
}

func NewPostgresScoreRepository(db database.DB) *PostgresScoreRepository {
	return &PostgresScoreRepository{db: db}
}

// SaveBatch upserts one row per persona/job pair; rescoring replaces the
// previous outcome.
func (r *PostgresScoreRepository) SaveBatch(ctx context.Context, records []ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	for _, rec := range records {
		id := rec.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO scores (id, persona_id, job_id, passed, fit_total, stretch_total, ghost_score, degraded, detail, scored_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (persona_id, job_id)
DO UPDATE SET passed = EXCLUDED.passed, fit_total = EXCLUDED.fit_total,
	stretch_total = EXCLUDED.stretch_total, ghost_score = EXCLUDED.ghost_score,
	degraded = EXCLUDED.degraded, detail = EXCLUDED.detail, scored_at = EXCLUDED.scored_at`,
			id, rec.PersonaID, rec.JobID, rec.Passed, rec.FitTotal, rec.StretchTotal,
			rec.GhostScore, rec.Degraded, rec.Detail, rec.ScoredAt,
		); err != nil {
			return fmt.Errorf("save score for job %s: %w", rec.JobID, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresScoreRepository) ListByPersona(ctx context.Context, personaID uuid.UUID, limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
SELECT id, persona_id, job_id, passed, fit_total, stretch_total, ghost_score, degraded, detail, scored_at
FROM scores WHERE persona_id = $1
ORDER BY fit_total DESC NULLS LAST
LIMIT $2`, personaID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ScoreRecord, 0)
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.PersonaID, &rec.JobID, &rec.Passed, &rec.FitTotal,
			&rec.StretchTotal, &rec.GhostScore, &rec.Degraded, &rec.Detail, &rec.ScoredAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresScoreRepository) DeleteByPersona(ctx context.Context, personaID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM scores WHERE persona_id = $1`, personaID)
	return err
}
