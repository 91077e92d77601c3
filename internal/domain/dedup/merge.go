package dedup

import (
	"strings"

	"pathmatch/internal/domain/job"
)

// aggregatorHosts are job boards whose application URLs are less useful
// than a direct company careers page.
var aggregatorHosts = []string{
	"linkedin.com", "indeed.com", "glassdoor.com", "ziprecruiter.com",
	"monster.com", "stepstone.de", "xing.com", "jobs.lever.co",
}

// Merge resolves conflicting fields between the stored posting and a
// freshly seen duplicate. Priorities: keep salary data wherever it
// exists, prefer a direct-company URL over an aggregator, keep the
// earliest posted date and the longer description.
func Merge(existing, incoming job.Posting) job.Posting {
	merged := existing

	if !existing.SalaryDisclosed() && incoming.SalaryDisclosed() {
		merged.SalaryMin = incoming.SalaryMin
		merged.SalaryMax = incoming.SalaryMax
		merged.SalaryCurrency = incoming.SalaryCurrency
	}

	if isAggregatorURL(existing.URL) && incoming.URL != "" && !isAggregatorURL(incoming.URL) {
		merged.URL = incoming.URL
	}

	if incoming.PostedDate != nil &&
		(existing.PostedDate == nil || incoming.PostedDate.Before(*existing.PostedDate)) {
		merged.PostedDate = incoming.PostedDate
	}

	if len(incoming.Description) > len(existing.Description) {
		merged.Description = incoming.Description
		merged.DescriptionHash = incoming.DescriptionHash
	}

	if existing.ApplicationDeadline == nil {
		merged.ApplicationDeadline = incoming.ApplicationDeadline
	}
	if strings.TrimSpace(existing.Location) == "" {
		merged.Location = incoming.Location
	}
	if existing.WorkModel == job.WorkModelUnknown {
		merged.WorkModel = incoming.WorkModel
	}
	if existing.VisaSponsored == nil {
		merged.VisaSponsored = incoming.VisaSponsored
	}

	return merged
}

func isAggregatorURL(rawURL string) bool {
	u := strings.ToLower(rawURL)
	for _, host := range aggregatorHosts {
		if strings.Contains(u, host) {
			return true
		}
	}
	return false
}
