package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pathmatch/internal/database"
	"pathmatch/internal/domain/persona"
)

var ErrPersonaNotFound = errors.New("persona not found")

type PersonaRepository interface {
	Create(ctx context.Context, p *persona.Profile) error
	Update(ctx context.Context, p *persona.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (persona.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]persona.Profile, error)
}

type PostgresPersonaRepository struct {
	db database.DB
}

func NewPostgresPersonaRepository(db database.DB) *PostgresPersonaRepository {
	return &PostgresPersonaRepository{db: db}
}

func (r *PostgresPersonaRepository) Create(ctx context.Context, p *persona.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	nn, err := json.Marshal(p.NonNegotiables)
	if err != nil {
		return fmt.Errorf("marshal non-negotiables: %w", err)
	}

	_, err = r.db.Exec(ctx, `
INSERT INTO personas (id, user_id, skills, years_experience, current_role, current_company,
	target_roles, target_skills, location, remote_preference, non_negotiables, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.UserID, skills, p.YearsExperience, p.CurrentRole, p.CurrentCompany,
		p.TargetRoles, p.TargetSkills, p.Location, string(p.RemotePreference), nn, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PostgresPersonaRepository) Update(ctx context.Context, p *persona.Profile) error {
	p.UpdatedAt = time.Now().UTC()

	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	nn, err := json.Marshal(p.NonNegotiables)
	if err != nil {
		return fmt.Errorf("marshal non-negotiables: %w", err)
	}

	affected, err := r.db.Exec(ctx, `
UPDATE personas SET skills = $2, years_experience = $3, current_role = $4, current_company = $5,
	target_roles = $6, target_skills = $7, location = $8, remote_preference = $9,
	non_negotiables = $10, updated_at = $11
WHERE id = $1`,
		p.ID, skills, p.YearsExperience, p.CurrentRole, p.CurrentCompany,
		p.TargetRoles, p.TargetSkills, p.Location, string(p.RemotePreference), nn, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPersonaNotFound
	}
	return nil
}

func (r *PostgresPersonaRepository) FindByID(ctx context.Context, id uuid.UUID) (persona.Profile, error) {
	row := r.db.QueryRow(ctx, `
SELECT id, user_id, skills, years_experience, COALESCE(current_role, ''), COALESCE(current_company, ''),
	target_roles, target_skills, COALESCE(location, ''), remote_preference, non_negotiables,
	created_at, updated_at
FROM personas WHERE id = $1`, id)

	p, err := scanPersona(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return persona.Profile{}, ErrPersonaNotFound
		}
		return persona.Profile{}, err
	}
	return p, nil
}

func (r *PostgresPersonaRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]persona.Profile, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, user_id, skills, years_experience, COALESCE(current_role, ''), COALESCE(current_company, ''),
	target_roles, target_skills, COALESCE(location, ''), remote_preference, non_negotiables,
	created_at, updated_at
FROM personas WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]persona.Profile, 0)
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPersona(row database.Row) (persona.Profile, error) {
	var p persona.Profile
	var skills, nn []byte
	var pref string

	err := row.Scan(&p.ID, &p.UserID, &skills, &p.YearsExperience, &p.CurrentRole, &p.CurrentCompany,
		&p.TargetRoles, &p.TargetSkills, &p.Location, &pref, &nn, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return persona.Profile{}, err
	}

	p.RemotePreference = persona.RemotePreference(pref)
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return persona.Profile{}, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	if len(nn) > 0 {
		if err := json.Unmarshal(nn, &p.NonNegotiables); err != nil {
			return persona.Profile{}, fmt.Errorf("unmarshal non-negotiables: %w", err)
		}
	}
	return p, nil
}
