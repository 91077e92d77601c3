package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pathmatch/internal/domain/dedup"
	"pathmatch/internal/domain/job"
)

func boardPosting(source, externalID, title string) job.Posting {
	p := job.Posting{
		ID:          uuid.New(),
		SourceName:  source,
		ExternalID:  externalID,
		Title:       title,
		Company:     "Acme",
		Description: "We are looking for an experienced backend engineer to build and operate Go services for the Acme payments platform. You will work with PostgreSQL, Redis and Kubernetes, own services end to end and collaborate with a small product team on reliability and performance.",
	}
	p.DescriptionHash = job.HashDescription(p.Title, p.Company, p.Description)
	return p
}

func TestIngestCreatesNew(t *testing.T) {
	jobs := newFakeJobRepo()
	u := NewDedupUsecase(jobs, nil, nil)

	out, err := u.Ingest(context.Background(), boardPosting("boardA", "ext-1", "Backend Engineer"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Kind != dedup.OutcomeCreateNew {
		t.Fatalf("expected create_new, got %s", out.Kind)
	}
	if len(jobs.created) != 1 {
		t.Fatalf("expected one stored posting, got %d", len(jobs.created))
	}
	if jobs.created[0].FirstSeenDate == nil {
		t.Fatal("first seen date must be stamped on ingest")
	}
}

func TestIngestUpdatesExisting(t *testing.T) {
	jobs := newFakeJobRepo()
	existing := boardPosting("boardA", "ext-1", "Backend Engineer")
	jobs.jobs[existing.ID] = existing

	update := boardPosting("boardA", "ext-1", "Backend Engineer")
	update.SalaryMin = intPtrUC(90000)

	u := NewDedupUsecase(jobs, nil, nil)
	out, err := u.Ingest(context.Background(), update)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Kind != dedup.OutcomeUpdateExisting || out.CanonicalID != existing.ID {
		t.Fatalf("expected update_existing on %s, got %+v", existing.ID, out)
	}
	if got := jobs.jobs[existing.ID]; got.SalaryMin == nil || *got.SalaryMin != 90000 {
		t.Fatal("merged salary must be persisted")
	}
}

func TestIngestLinksCrossSourceDuplicate(t *testing.T) {
	jobs := newFakeJobRepo()
	existing := boardPosting("boardA", "ext-1", "Backend Engineer")
	jobs.jobs[existing.ID] = existing

	dupe := boardPosting("boardB", "other-id", "Backend Engineer")

	u := NewDedupUsecase(jobs, nil, nil)
	out, err := u.Ingest(context.Background(), dupe)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Kind != dedup.OutcomeAddToAlsoFoundOn || out.CanonicalID != existing.ID {
		t.Fatalf("expected add_to_also_found_on, got %+v", out)
	}
	if len(jobs.jobs[existing.ID].AlsoFoundOn) != 1 {
		t.Fatal("cross-source match must be recorded on the canonical posting")
	}
}

func TestIngestCreatesLinkedRepost(t *testing.T) {
	jobs := newFakeJobRepo()
	existing := boardPosting("boardA", "ext-1", "Backend Engineer")
	jobs.jobs[existing.ID] = existing

	repost := boardPosting("boardA", "ext-2", "Backend Engineer")
	repost.Description = existing.Description + " Reposted with a new closing date."
	repost.DescriptionHash = job.HashDescription(repost.Title, repost.Company, repost.Description)

	u := NewDedupUsecase(jobs, nil, nil)
	out, err := u.Ingest(context.Background(), repost)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if out.Kind != dedup.OutcomeCreateLinkedRepost || out.CanonicalID != existing.ID {
		t.Fatalf("expected create_linked_repost, got %+v", out)
	}
	if jobs.jobs[existing.ID].RepostCount != 1 {
		t.Fatalf("canonical repost count must increment, got %d", jobs.jobs[existing.ID].RepostCount)
	}
	created := jobs.created[0]
	if created.LinkedJobID == nil || *created.LinkedJobID != existing.ID {
		t.Fatal("repost must link back to the canonical posting")
	}
}

func TestIngestRepostWithIdenticalTextCollapses(t *testing.T) {
	jobs := newFakeJobRepo()
	existing := boardPosting("boardA", "ext-1", "Backend Engineer")
	jobs.jobs[existing.ID] = existing

	// Same board relists the posting verbatim under a fresh external id.
	// Its content hash equals the canonical row's, so the insert loses
	// to the unique hash index.
	repost := boardPosting("boardA", "ext-2", "Backend Engineer")
	jobs.createErr = &pgconn.PgError{Code: "23505"}

	u := NewDedupUsecase(jobs, nil, nil)
	out, err := u.Ingest(context.Background(), repost)
	if err != nil {
		t.Fatalf("identical-text repost must not surface an error: %v", err)
	}
	if out.Kind != dedup.OutcomeCreateLinkedRepost || out.CanonicalID != existing.ID {
		t.Fatalf("expected create_linked_repost on %s, got %+v", existing.ID, out)
	}
	if jobs.jobs[existing.ID].RepostCount != 1 {
		t.Fatalf("canonical repost count must increment, got %d", jobs.jobs[existing.ID].RepostCount)
	}
	if len(jobs.created) != 0 {
		t.Fatalf("no duplicate row may be stored, got %d", len(jobs.created))
	}
}

func TestIngestRecoversFromInsertRace(t *testing.T) {
	jobs := newFakeJobRepo()

	// The winner committed between our pool load and our insert: it is
	// invisible to the pool but owns the unique hash index entry.
	candidate := boardPosting("boardB", "ext-9", "Backend Engineer")
	winner := boardPosting("boardA", "ext-1", "Backend Engineer")
	winner.DescriptionHash = candidate.DescriptionHash
	jobs.hashOnly[winner.DescriptionHash] = winner
	jobs.createErr = &pgconn.PgError{Code: "23505"}

	u := NewDedupUsecase(jobs, nil, nil)
	out, err := u.Ingest(context.Background(), candidate)
	if err != nil {
		t.Fatalf("race recovery must not surface an error: %v", err)
	}
	if out.Kind != dedup.OutcomeAddToAlsoFoundOn || out.CanonicalID != winner.ID {
		t.Fatalf("expected link to the race winner, got %+v", out)
	}
	if len(jobs.hashOnly[winner.DescriptionHash].AlsoFoundOn) != 1 {
		t.Fatal("loser must be linked on the winner")
	}
}

func intPtrUC(v int) *int { return &v }
