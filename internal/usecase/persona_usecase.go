package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathmatch/internal/domain/persona"
	"pathmatch/internal/infrastructure/cache"
	"pathmatch/internal/repository"
)

// ScoreInvalidator drops cached batch results for a persona.
type ScoreInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type PersonaUsecase interface {
	Create(ctx context.Context, p persona.Profile) (persona.Profile, error)
	Update(ctx context.Context, p persona.Profile) (persona.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (persona.Profile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]persona.Profile, error)
}

type Persona struct {
	personas   repository.PersonaRepository
	scores     repository.ScoreRepository
	embeddings EmbeddingInvalidator
	results    ScoreInvalidator
	log        *zap.Logger
}

func NewPersonaUsecase(
	personas repository.PersonaRepository,
	scores repository.ScoreRepository,
	embeddings EmbeddingInvalidator,
	results ScoreInvalidator,
	log *zap.Logger,
) *Persona {
	if log == nil {
		log = zap.NewNop()
	}
	return &Persona{personas: personas, scores: scores, embeddings: embeddings, results: results, log: log}
}

func (u *Persona) Create(ctx context.Context, p persona.Profile) (persona.Profile, error) {
	if p.UserID == uuid.Nil {
		return persona.Profile{}, ErrUnauthorized
	}
	if err := u.personas.Create(ctx, &p); err != nil {
		return persona.Profile{}, ErrInternal
	}
	return p, nil
}

// Update persists profile edits and invalidates everything derived from
// the previous content: cached embeddings, cached batch results and
// stored scores.
func (u *Persona) Update(ctx context.Context, p persona.Profile) (persona.Profile, error) {
	if p.ID == uuid.Nil {
		return persona.Profile{}, ErrPersonaNotFound
	}

	if err := u.personas.Update(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return persona.Profile{}, ErrPersonaNotFound
		}
		return persona.Profile{}, ErrInternal
	}

	u.invalidateDerived(ctx, p.ID)
	return p, nil
}

func (u *Persona) Get(ctx context.Context, id uuid.UUID) (persona.Profile, error) {
	p, err := u.personas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return persona.Profile{}, ErrPersonaNotFound
		}
		return persona.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Persona) ListByUser(ctx context.Context, userID uuid.UUID) ([]persona.Profile, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.personas.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Persona) invalidateDerived(ctx context.Context, personaID uuid.UUID) {
	if u.embeddings != nil {
		if err := u.embeddings.Invalidate(ctx, personaID); err != nil {
			u.log.Warn("invalidate persona embeddings failed",
				zap.String("persona_id", personaID.String()), zap.Error(err))
		}
	}
	if u.results != nil {
		if err := u.results.DeleteByPattern(ctx, cache.ScoreKeyPattern(personaID)); err != nil {
			u.log.Warn("invalidate cached results failed",
				zap.String("persona_id", personaID.String()), zap.Error(err))
		}
	}
	if u.scores != nil {
		if err := u.scores.DeleteByPersona(ctx, personaID); err != nil {
			u.log.Warn("drop stale scores failed",
				zap.String("persona_id", personaID.String()), zap.Error(err))
		}
	}
}
