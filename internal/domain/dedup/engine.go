package dedup

import (
	"github.com/google/uuid"

	"pathmatch/internal/domain/job"
)

// OutcomeKind is the dedup decision for an incoming posting.
type OutcomeKind string

const (
	OutcomeUpdateExisting     OutcomeKind = "update_existing"
	OutcomeAddToAlsoFoundOn   OutcomeKind = "add_to_also_found_on"
	OutcomeCreateLinkedRepost OutcomeKind = "create_linked_repost"
	OutcomeCreateNew          OutcomeKind = "create_new"
)

// Outcome carries the decision and, for anything but create_new, the
// canonical job the action applies to.
type Outcome struct {
	Kind        OutcomeKind
	CanonicalID uuid.UUID
}

// Decide classifies a candidate posting against the existing pool. Rules
// are ordered and the first match wins:
//
//  1. same source and external id       -> update_existing
//  2. other source, identical hash      -> add_to_also_found_on
//  3. same company, similar title and
//     near-identical description       -> create_linked_repost
//  4. otherwise                         -> create_new
func Decide(candidate job.Posting, pool []job.Posting) Outcome {
	for _, existing := range pool {
		if existing.SourceName == candidate.SourceName && existing.ExternalID == candidate.ExternalID &&
			candidate.ExternalID != "" {
			return Outcome{Kind: OutcomeUpdateExisting, CanonicalID: existing.ID}
		}
	}

	for _, existing := range pool {
		if existing.SourceName != candidate.SourceName && existing.DescriptionHash == candidate.DescriptionHash &&
			candidate.DescriptionHash != "" {
			return Outcome{Kind: OutcomeAddToAlsoFoundOn, CanonicalID: existing.ID}
		}
	}

	for _, existing := range pool {
		if sameCompany(existing.Company, candidate.Company) &&
			TitlesSimilar(existing.Title, candidate.Title) &&
			DescriptionsSimilar(existing.Description, candidate.Description) {
			return Outcome{Kind: OutcomeCreateLinkedRepost, CanonicalID: existing.ID}
		}
	}

	return Outcome{Kind: OutcomeCreateNew}
}
