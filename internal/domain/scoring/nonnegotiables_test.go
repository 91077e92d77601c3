package scoring

import (
	"testing"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
)

func boolPtr(v bool) *bool { return &v }

func TestVisaSponsorshipBenefitOfDoubt(t *testing.T) {
	p := persona.Profile{NonNegotiables: persona.NonNegotiables{RequiresVisa: true}}

	undisclosed := EvaluateNonNegotiables(p, job.Posting{})
	if !undisclosed.Passed {
		t.Fatalf("undisclosed sponsorship must pass, failed with %v", undisclosed.Failed)
	}

	refused := EvaluateNonNegotiables(p, job.Posting{VisaSponsored: boolPtr(false)})
	if refused.Passed {
		t.Fatal("explicit sponsorship refusal must fail the filter")
	}
	if len(refused.Failed) != 1 {
		t.Fatalf("expected one failed requirement, got %v", refused.Failed)
	}

	sponsored := EvaluateNonNegotiables(p, job.Posting{VisaSponsored: boolPtr(true)})
	if !sponsored.Passed {
		t.Fatalf("disclosed sponsorship must pass, failed with %v", sponsored.Failed)
	}
}

func TestRemoteOnlyRejectsOnsite(t *testing.T) {
	p := persona.Profile{RemotePreference: persona.RemoteOnly}

	if res := EvaluateNonNegotiables(p, job.Posting{WorkModel: job.WorkModelOnsite}); res.Passed {
		t.Fatal("onsite job must fail a remote-only profile")
	}
	if res := EvaluateNonNegotiables(p, job.Posting{WorkModel: job.WorkModelHybrid}); !res.Passed {
		t.Fatal("hybrid is a soft conflict handled by scoring, not a hard failure")
	}
	if res := EvaluateNonNegotiables(p, job.Posting{}); !res.Passed {
		t.Fatal("undisclosed work model must pass")
	}
}

func TestMinimumSalaryFloor(t *testing.T) {
	p := persona.Profile{NonNegotiables: persona.NonNegotiables{MinSalary: intPtr(90000)}}

	if res := EvaluateNonNegotiables(p, job.Posting{SalaryMin: intPtr(60000), SalaryMax: intPtr(80000)}); res.Passed {
		t.Fatal("range below the floor must fail")
	}
	if res := EvaluateNonNegotiables(p, job.Posting{SalaryMin: intPtr(80000), SalaryMax: intPtr(95000)}); !res.Passed {
		t.Fatalf("range topping above the floor must pass, failed with %v", res.Failed)
	}
	if res := EvaluateNonNegotiables(p, job.Posting{}); !res.Passed {
		t.Fatal("undisclosed salary must pass")
	}
}

func TestIndustryExclusion(t *testing.T) {
	p := persona.Profile{NonNegotiables: persona.NonNegotiables{ExcludedIndustries: []string{"Gambling"}}}

	if res := EvaluateNonNegotiables(p, job.Posting{Industry: "gambling"}); res.Passed {
		t.Fatal("excluded industry must fail regardless of casing")
	}
	if res := EvaluateNonNegotiables(p, job.Posting{Industry: "Fintech"}); !res.Passed {
		t.Fatalf("non-excluded industry must pass, failed with %v", res.Failed)
	}
}

func TestCommutableCityCheck(t *testing.T) {
	p := persona.Profile{NonNegotiables: persona.NonNegotiables{CommutableCities: []string{"Berlin"}}}

	if res := EvaluateNonNegotiables(p, job.Posting{WorkModel: job.WorkModelOnsite, Location: "Munich, Germany"}); res.Passed {
		t.Fatal("onsite job outside the commute list must fail")
	}
	if res := EvaluateNonNegotiables(p, job.Posting{WorkModel: job.WorkModelOnsite, Location: "Berlin, Germany"}); !res.Passed {
		t.Fatalf("onsite job in a commutable city must pass, failed with %v", res.Failed)
	}
	if res := EvaluateNonNegotiables(p, job.Posting{WorkModel: job.WorkModelRemote, Location: "Munich, Germany"}); !res.Passed {
		t.Fatal("remote jobs are exempt from the commute check")
	}
}

func TestAllChecksReportedIndependently(t *testing.T) {
	p := persona.Profile{
		RemotePreference: persona.RemoteOnly,
		NonNegotiables: persona.NonNegotiables{
			MinSalary:          intPtr(100000),
			ExcludedIndustries: []string{"Defense"},
			RequiresVisa:       true,
		},
	}
	j := job.Posting{
		WorkModel:     job.WorkModelOnsite,
		SalaryMax:     intPtr(50000),
		Industry:      "Defense",
		VisaSponsored: boolPtr(false),
	}

	res := EvaluateNonNegotiables(p, j)
	if res.Passed {
		t.Fatal("every rule is violated, filter must fail")
	}
	if len(res.Failed) != 4 {
		t.Fatalf("expected 4 independent failures, got %d: %v", len(res.Failed), res.Failed)
	}
	if len(res.Checks) != 5 {
		t.Fatalf("expected 5 checks reported, got %d", len(res.Checks))
	}
}
