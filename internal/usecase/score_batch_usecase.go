package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
	"pathmatch/internal/domain/scoring"
	"pathmatch/internal/embedding"
	"pathmatch/internal/infrastructure/cache"
	"pathmatch/internal/repository"
)

// ScoredJob is the per-job outcome of a batch run. Fit, Stretch and
// Explanation are nil when the job failed the non-negotiables filter.
// Degraded marks jobs scored with neutral fallbacks after a provider
// failure; callers may retry those later.
type ScoredJob struct {
	JobID              uuid.UUID              `json:"job_id"`
	Passed             bool                   `json:"passed"`
	Fit                *scoring.FitResult     `json:"fit,omitempty"`
	Stretch            *scoring.StretchResult `json:"stretch,omitempty"`
	Ghost              *scoring.GhostSignals  `json:"ghost,omitempty"`
	Explanation        *scoring.Explanation   `json:"explanation,omitempty"`
	FailedRequirements []string               `json:"failed_requirements,omitempty"`
	Degraded           bool                   `json:"degraded"`
}

// EmbeddingSource is the cache surface the orchestrator needs.
type EmbeddingSource interface {
	GetOrCompute(ctx context.Context, reqs []embedding.Request) ([]scoring.Vector, error)
}

// ResultCache is the optional warm tier for whole-batch results.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// BatchNotifier is told when a batch finishes, for live UI updates.
type BatchNotifier interface {
	NotifyScored(personaID uuid.UUID, scored, total int)
}

type ScoreBatchUsecase interface {
	ScoreBatch(ctx context.Context, personaID uuid.UUID, jobIDs []uuid.UUID) ([]ScoredJob, error)
	FilterJob(ctx context.Context, personaID, jobID uuid.UUID) (scoring.FilterResult, error)
}

type ScoreBatch struct {
	personas   repository.PersonaRepository
	jobs       repository.JobRepository
	scores     repository.ScoreRepository
	embeddings EmbeddingSource
	results    ResultCache
	notifier   BatchNotifier
	fitW       scoring.FitWeights
	stretchW   scoring.StretchWeights
	ghostW     scoring.GhostWeights
	log        *zap.Logger
}

func NewScoreBatchUsecase(
	personas repository.PersonaRepository,
	jobs repository.JobRepository,
	scores repository.ScoreRepository,
	embeddings EmbeddingSource,
	results ResultCache,
	notifier BatchNotifier,
	fitW scoring.FitWeights,
	stretchW scoring.StretchWeights,
	ghostW scoring.GhostWeights,
	log *zap.Logger,
) *ScoreBatch {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScoreBatch{
		personas:   personas,
		jobs:       jobs,
		scores:     scores,
		embeddings: embeddings,
		results:    results,
		notifier:   notifier,
		fitW:       fitW,
		stretchW:   stretchW,
		ghostW:     ghostW,
		log:        log,
	}
}

// ScoreBatch loads the persona and jobs, runs the scoring pipeline and
// persists the outcomes. Results come back in input order.
func (u *ScoreBatch) ScoreBatch(ctx context.Context, personaID uuid.UUID, jobIDs []uuid.UUID) ([]ScoredJob, error) {
	if personaID == uuid.Nil {
		return nil, ErrPersonaNotFound
	}

	p, err := u.personas.FindByID(ctx, personaID)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return nil, ErrPersonaNotFound
		}
		return nil, ErrInternal
	}

	digest := u.batchDigest(jobIDs)
	cacheKey := cache.ScoreBatchKey(personaID, digest)
	if u.results != nil {
		var cached []ScoredJob
		if ok, _ := u.results.GetJSON(ctx, cacheKey, &cached); ok && len(cached) == len(jobIDs) {
			return cached, nil
		}
	}

	loaded, err := u.jobs.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, ErrInternal
	}
	byID := make(map[uuid.UUID]job.Posting, len(loaded))
	for _, j := range loaded {
		byID[j.ID] = j
	}

	ordered := make([]job.Posting, 0, len(jobIDs))
	for _, id := range jobIDs {
		j, ok := byID[id]
		if !ok {
			// Unknown ids still get a structurally complete entry.
			j = job.Posting{ID: id}
		}
		ordered = append(ordered, j)
	}

	out := u.Score(ctx, p, ordered)

	u.persist(ctx, personaID, out)
	if u.results != nil {
		if err := u.results.SetJSON(ctx, cacheKey, out, 0); err != nil {
			u.log.Warn("cache batch result failed", zap.Error(err))
		}
	}
	if u.notifier != nil {
		scored := 0
		for _, s := range out {
			if s.Passed {
				scored++
			}
		}
		u.notifier.NotifyScored(personaID, scored, len(out))
	}
	return out, nil
}

// Score is the engine core: a total function over already-loaded
// records. It never fails a whole batch for one bad job; provider
// failures degrade the affected components to neutral instead.
func (u *ScoreBatch) Score(ctx context.Context, p persona.Profile, jobs []job.Posting) []ScoredJob {
	out := make([]ScoredJob, len(jobs))

	// Filter runs before any embedding work; failing jobs never reach
	// the calculators.
	passing := make([]int, 0, len(jobs))
	for i, j := range jobs {
		res := scoring.EvaluateNonNegotiables(p, j)
		out[i] = ScoredJob{JobID: j.ID, Passed: res.Passed, FailedRequirements: res.Failed}
		if res.Passed {
			passing = append(passing, i)
		}
	}
	if len(passing) == 0 {
		return out
	}

	personaVecs, degraded := u.personaVectors(ctx, p)
	jobVecs := u.jobVectors(ctx, jobs, passing)
	if jobVecs == nil {
		degraded = true
	}

	now := time.Now().UTC()
	for _, i := range passing {
		j := jobs[i]
		vecs := personaVecs
		if jobVecs != nil {
			vecs.JobRequirements = jobVecs[j.ID].requirements
			vecs.JobCulture = jobVecs[j.ID].culture
		}

		fit := scoring.CalculateFit(p, j, vecs, u.fitW)
		stretch := scoring.CalculateStretch(p, j, vecs, u.stretchW)
		// The batch path rates staleness from the deterministic signals
		// only; the vagueness sub-signal stays neutral so no per-job LLM
		// call enters the pipeline.
		ghost := scoring.CalculateGhost(j, nil, now, u.ghostW)
		expl := scoring.Explain(fit, stretch, &ghost, j)

		out[i].Fit = &fit
		out[i].Stretch = &stretch
		out[i].Ghost = &ghost
		out[i].Explanation = &expl
		out[i].Degraded = degraded
	}
	return out
}

// FilterJob exposes the non-negotiables gate on its own.
func (u *ScoreBatch) FilterJob(ctx context.Context, personaID, jobID uuid.UUID) (scoring.FilterResult, error) {
	p, err := u.personas.FindByID(ctx, personaID)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			return scoring.FilterResult{}, ErrPersonaNotFound
		}
		return scoring.FilterResult{}, ErrInternal
	}
	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return scoring.FilterResult{}, ErrJobNotFound
		}
		return scoring.FilterResult{}, ErrInternal
	}
	return scoring.EvaluateNonNegotiables(p, j), nil
}

// personaVectors derives the persona's three embeddings exactly once
// per batch. A provider failure degrades every cosine component to its
// neutral default rather than aborting.
func (u *ScoreBatch) personaVectors(ctx context.Context, p persona.Profile) (scoring.PairVectors, bool) {
	reqs := []embedding.Request{
		{EntityID: p.ID, Kind: scoring.VectorPersonaHardSkills, SourceText: embedding.SourceText(scoring.VectorPersonaHardSkills, &p, nil)},
		{EntityID: p.ID, Kind: scoring.VectorPersonaSoftSkills, SourceText: embedding.SourceText(scoring.VectorPersonaSoftSkills, &p, nil)},
		{EntityID: p.ID, Kind: scoring.VectorPersonaLogistics, SourceText: embedding.SourceText(scoring.VectorPersonaLogistics, &p, nil)},
	}

	vecs, err := u.embeddings.GetOrCompute(ctx, reqs)
	if err != nil {
		u.log.Warn("persona embedding failed, scoring with neutral components",
			zap.String("persona_id", p.ID.String()),
			zap.Bool("retryable", embedding.IsRetryable(err)),
			zap.Error(err))
		return scoring.PairVectors{}, true
	}
	return scoring.PairVectors{
		PersonaHard:      &vecs[0],
		PersonaSoft:      &vecs[1],
		PersonaLogistics: &vecs[2],
	}, false
}

type jobPairVectors struct {
	requirements *scoring.Vector
	culture      *scoring.Vector
}

// jobVectors embeds requirements and culture text for every passing job
// in one bulk provider call. nil means the provider failed and callers
// must degrade.
func (u *ScoreBatch) jobVectors(ctx context.Context, jobs []job.Posting, passing []int) map[uuid.UUID]jobPairVectors {
	reqs := make([]embedding.Request, 0, len(passing)*2)
	for _, i := range passing {
		j := jobs[i]
		reqs = append(reqs,
			embedding.Request{EntityID: j.ID, Kind: scoring.VectorJobRequirements, SourceText: embedding.SourceText(scoring.VectorJobRequirements, nil, &j)},
			embedding.Request{EntityID: j.ID, Kind: scoring.VectorJobCulture, SourceText: embedding.SourceText(scoring.VectorJobCulture, nil, &j)},
		)
	}

	vecs, err := u.embeddings.GetOrCompute(ctx, reqs)
	if err != nil {
		u.log.Warn("job embedding failed, scoring with neutral components",
			zap.Int("jobs", len(passing)),
			zap.Bool("retryable", embedding.IsRetryable(err)),
			zap.Error(err))
		return nil
	}

	out := make(map[uuid.UUID]jobPairVectors, len(passing))
	for n, i := range passing {
		j := jobs[i]
		out[j.ID] = jobPairVectors{
			requirements: &vecs[n*2],
			culture:      &vecs[n*2+1],
		}
	}
	return out
}

func (u *ScoreBatch) persist(ctx context.Context, personaID uuid.UUID, out []ScoredJob) {
	if u.scores == nil {
		return
	}

	records := make([]repository.ScoreRecord, 0, len(out))
	now := time.Now().UTC()
	for _, s := range out {
		rec := repository.ScoreRecord{
			PersonaID: personaID,
			JobID:     s.JobID,
			Passed:    s.Passed,
			Degraded:  s.Degraded,
			ScoredAt:  now,
		}
		if s.Fit != nil {
			rec.FitTotal = &s.Fit.Total
		}
		if s.Stretch != nil {
			rec.StretchTotal = &s.Stretch.Total
		}
		if s.Ghost != nil {
			rec.GhostScore = &s.Ghost.Score
		}
		if detail, err := json.Marshal(s); err == nil {
			rec.Detail = detail
		}
		records = append(records, rec)
	}

	if err := u.scores.SaveBatch(ctx, records); err != nil {
		u.log.Error("persist batch scores failed",
			zap.String("persona_id", personaID.String()),
			zap.Error(err))
	}
}

// batchDigest folds the job list and the active weights into the cache
// key, so retuning the weights never serves results scored under the
// old ones.
func (u *ScoreBatch) batchDigest(ids []uuid.UUID) string {
	h := sha256.New()
	for _, id := range ids {
		h.Write(id[:])
	}
	fmt.Fprintf(h, "%+v%+v%+v", u.fitW, u.stretchW, u.ghostW)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
