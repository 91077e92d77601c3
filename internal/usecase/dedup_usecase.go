package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathmatch/internal/domain/dedup"
	"pathmatch/internal/domain/job"
	"pathmatch/internal/repository"
)

// EmbeddingInvalidator drops cached vectors when an entity's content
// changes.
type EmbeddingInvalidator interface {
	Invalidate(ctx context.Context, entityID uuid.UUID) error
}

type DedupUsecase interface {
	Ingest(ctx context.Context, candidate job.Posting) (dedup.Outcome, error)
}

type Dedup struct {
	jobs       repository.JobRepository
	embeddings EmbeddingInvalidator
	log        *zap.Logger
}

func NewDedupUsecase(jobs repository.JobRepository, embeddings EmbeddingInvalidator, log *zap.Logger) *Dedup {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dedup{jobs: jobs, embeddings: embeddings, log: log}
}

// Ingest classifies an incoming posting against stored ones and applies
// the outcome. A duplicate-insert race lost at the unique hash index is
// recovered by re-reading the winner and linking, never surfaced.
func (u *Dedup) Ingest(ctx context.Context, candidate job.Posting) (dedup.Outcome, error) {
	if candidate.DescriptionHash == "" {
		candidate.DescriptionHash = job.HashDescription(candidate.Title, candidate.Company, candidate.Description)
	}
	if candidate.FirstSeenDate == nil {
		now := time.Now().UTC()
		candidate.FirstSeenDate = &now
	}

	pool, err := u.jobs.FindDedupPool(ctx, candidate.SourceName, candidate.Company)
	if err != nil {
		return dedup.Outcome{}, ErrInternal
	}

	out := dedup.Decide(candidate, pool)
	switch out.Kind {
	case dedup.OutcomeUpdateExisting:
		return out, u.updateExisting(ctx, out.CanonicalID, candidate, pool)
	case dedup.OutcomeAddToAlsoFoundOn:
		return out, u.linkSource(ctx, out.CanonicalID, candidate)
	case dedup.OutcomeCreateLinkedRepost:
		return out, u.createLinkedRepost(ctx, out.CanonicalID, &candidate)
	default:
		return u.createNew(ctx, &candidate)
	}
}

func (u *Dedup) updateExisting(ctx context.Context, id uuid.UUID, candidate job.Posting, pool []job.Posting) error {
	var existing job.Posting
	for _, p := range pool {
		if p.ID == id {
			existing = p
			break
		}
	}

	merged := dedup.Merge(existing, candidate)
	merged.ID = id
	if err := u.jobs.Update(ctx, &merged); err != nil {
		return ErrInternal
	}

	if merged.Description != existing.Description && u.embeddings != nil {
		if err := u.embeddings.Invalidate(ctx, id); err != nil {
			u.log.Warn("invalidate embeddings after merge failed",
				zap.String("job_id", id.String()), zap.Error(err))
		}
	}
	return nil
}

func (u *Dedup) linkSource(ctx context.Context, id uuid.UUID, candidate job.Posting) error {
	ref := job.SourceRef{Source: candidate.SourceName, URL: candidate.URL}
	if err := u.jobs.AddAlsoFoundOn(ctx, id, ref); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Dedup) createLinkedRepost(ctx context.Context, canonicalID uuid.UUID, candidate *job.Posting) error {
	candidate.LinkedJobID = &canonicalID
	if err := u.jobs.Create(ctx, candidate); err != nil {
		if !repository.IsUniqueViolation(err) {
			return ErrInternal
		}
		// A repost with byte-identical text collides with the canonical
		// row's hash entry. It carries no new content, so skip the row
		// and move only the count.
		u.log.Info("identical-text repost collapsed onto canonical",
			zap.String("canonical_id", canonicalID.String()),
			zap.String("source", candidate.SourceName))
	}
	if err := u.jobs.IncrementRepost(ctx, canonicalID); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Dedup) createNew(ctx context.Context, candidate *job.Posting) (dedup.Outcome, error) {
	err := u.jobs.Create(ctx, candidate)
	if err == nil {
		return dedup.Outcome{Kind: dedup.OutcomeCreateNew, CanonicalID: candidate.ID}, nil
	}
	if !repository.IsUniqueViolation(err) {
		return dedup.Outcome{}, ErrInternal
	}

	// Lost the insert race on the content hash: another writer stored
	// the same posting first. Re-read the winner and link to it.
	winner, readErr := u.jobs.FindByDescriptionHash(ctx, candidate.DescriptionHash)
	if readErr != nil {
		return dedup.Outcome{}, ErrInternal
	}
	u.log.Info("duplicate insert race recovered",
		zap.String("winner_id", winner.ID.String()),
		zap.String("source", candidate.SourceName))

	out := dedup.Outcome{Kind: dedup.OutcomeAddToAlsoFoundOn, CanonicalID: winner.ID}
	return out, u.linkSource(ctx, winner.ID, *candidate)
}
