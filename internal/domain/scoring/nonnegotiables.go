package scoring

import (
	"fmt"
	"strings"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
)

// Check is one independently evaluated non-negotiable rule. Disclosed is
// false when the job did not state the attribute; such checks pass on
// the benefit-of-doubt policy.
type Check struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Disclosed bool   `json:"disclosed"`
	Reason    string `json:"reason,omitempty"`
}

// FilterResult is the outcome of the single hard gate evaluated before
// any scoring. Jobs that fail are persisted but never scored.
type FilterResult struct {
	Passed bool     `json:"passed"`
	Failed []string `json:"failed_requirements"`
	Checks []Check  `json:"checks"`
}

// EvaluateNonNegotiables runs every rule independently. A rule fails
// only on an explicit disclosed violation, never on missing data.
func EvaluateNonNegotiables(p persona.Profile, j job.Posting) FilterResult {
	checks := []Check{
		checkRemotePreference(p, j),
		checkMinimumSalary(p.NonNegotiables, j),
		checkCommutableCity(p, j),
		checkIndustryExclusion(p.NonNegotiables, j),
		checkVisaSponsorship(p.NonNegotiables, j),
	}

	res := FilterResult{Passed: true, Failed: make([]string, 0), Checks: checks}
	for _, c := range checks {
		if !c.Passed {
			res.Passed = false
			res.Failed = append(res.Failed, c.Reason)
		}
	}
	return res
}

func checkRemotePreference(p persona.Profile, j job.Posting) Check {
	c := Check{Name: "remote_preference", Passed: true}
	if j.WorkModel == job.WorkModelUnknown {
		return c
	}
	c.Disclosed = true
	if p.RemotePreference == persona.RemoteOnly && j.WorkModel == job.WorkModelOnsite {
		c.Passed = false
		c.Reason = "job is onsite but the profile requires remote work"
	}
	return c
}

func checkMinimumSalary(nn persona.NonNegotiables, j job.Posting) Check {
	c := Check{Name: "minimum_salary", Passed: true}
	if nn.MinSalary == nil || !j.SalaryDisclosed() {
		return c
	}
	c.Disclosed = true

	top := 0
	if j.SalaryMax != nil {
		top = *j.SalaryMax
	} else if j.SalaryMin != nil {
		top = *j.SalaryMin
	}
	if top < *nn.MinSalary {
		c.Passed = false
		c.Reason = fmt.Sprintf("disclosed salary tops out at %d, below the %d floor", top, *nn.MinSalary)
	}
	return c
}

func checkCommutableCity(p persona.Profile, j job.Posting) Check {
	c := Check{Name: "commutable_city", Passed: true}
	if len(p.NonNegotiables.CommutableCities) == 0 {
		return c
	}
	if j.WorkModel == job.WorkModelRemote || strings.TrimSpace(j.Location) == "" {
		return c
	}
	c.Disclosed = true
	if !cityCommutable(p.NonNegotiables.CommutableCities, j.Location) {
		c.Passed = false
		c.Reason = fmt.Sprintf("location %q is outside the commutable cities", j.Location)
	}
	return c
}

func checkIndustryExclusion(nn persona.NonNegotiables, j job.Posting) Check {
	c := Check{Name: "industry_exclusion", Passed: true}
	ind := strings.ToLower(strings.TrimSpace(j.Industry))
	if ind == "" || len(nn.ExcludedIndustries) == 0 {
		return c
	}
	c.Disclosed = true
	for _, ex := range nn.ExcludedIndustries {
		if strings.ToLower(strings.TrimSpace(ex)) == ind {
			c.Passed = false
			c.Reason = fmt.Sprintf("industry %q is excluded by the profile", j.Industry)
			break
		}
	}
	return c
}

func checkVisaSponsorship(nn persona.NonNegotiables, j job.Posting) Check {
	c := Check{Name: "visa_sponsorship", Passed: true}
	if !nn.RequiresVisa || j.VisaSponsored == nil {
		return c
	}
	c.Disclosed = true
	if !*j.VisaSponsored {
		c.Passed = false
		c.Reason = "job explicitly does not sponsor visas"
	}
	return c
}
