package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/scoring"
	"pathmatch/internal/repository"
)

// VaguenessRater is the LLM-backed sub-signal of the ghost detector.
type VaguenessRater interface {
	Rate(ctx context.Context, description string) (float64, error)
}

type GhostUsecase interface {
	CalculateGhostScore(ctx context.Context, jobID uuid.UUID) (scoring.GhostSignals, error)
}

type Ghost struct {
	jobs    repository.JobRepository
	rater   VaguenessRater
	weights scoring.GhostWeights
	log     *zap.Logger
}

func NewGhostUsecase(jobs repository.JobRepository, rater VaguenessRater, weights scoring.GhostWeights, log *zap.Logger) *Ghost {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ghost{jobs: jobs, rater: rater, weights: weights, log: log}
}

func (u *Ghost) CalculateGhostScore(ctx context.Context, jobID uuid.UUID) (scoring.GhostSignals, error) {
	if jobID == uuid.Nil {
		return scoring.GhostSignals{}, ErrJobNotFound
	}

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return scoring.GhostSignals{}, ErrJobNotFound
		}
		return scoring.GhostSignals{}, ErrInternal
	}

	return u.Calculate(ctx, j), nil
}

// Calculate runs the detector over an already-loaded posting. The
// vagueness sub-signal degrades to neutral when the language model is
// unavailable; the other four signals are pure computation.
func (u *Ghost) Calculate(ctx context.Context, j job.Posting) scoring.GhostSignals {
	var vagueness *float64
	if u.rater != nil {
		v, err := u.rater.Rate(ctx, j.Description)
		if err != nil {
			u.log.Warn("vagueness rating degraded to neutral",
				zap.String("job_id", j.ID.String()),
				zap.Error(err))
		} else {
			vagueness = &v
		}
	}
	return scoring.CalculateGhost(j, vagueness, time.Now().UTC(), u.weights)
}
