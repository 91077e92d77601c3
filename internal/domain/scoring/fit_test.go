package scoring

import (
	"testing"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
)

func intPtr(v int) *int { return &v }

func expertProfile() persona.Profile {
	skills := []persona.Skill{
		{Name: "Go", Type: persona.SkillTypeHard, Proficiency: persona.ProficiencyExpert, YearsUsed: 5},
		{Name: "PostgreSQL", Type: persona.SkillTypeHard, Proficiency: persona.ProficiencyExpert, YearsUsed: 5},
		{Name: "K8s", Type: persona.SkillTypeHard, Proficiency: persona.ProficiencyExpert, YearsUsed: 4},
		{Name: "Redis", Type: persona.SkillTypeHard, Proficiency: persona.ProficiencyExpert, YearsUsed: 4},
		{Name: "Docker", Type: persona.SkillTypeHard, Proficiency: persona.ProficiencyExpert, YearsUsed: 5},
	}
	return persona.Profile{
		Skills:           skills,
		YearsExperience:  5,
		CurrentRole:      "Backend Engineer",
		RemotePreference: persona.RemoteOnly,
	}
}

func backendJob() job.Posting {
	return job.Posting{
		Title:   "Backend Engineer",
		Company: "Acme",
		RequiredSkills: []job.SkillRequirement{
			{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "Kubernetes"}, {Name: "Redis"}, {Name: "Docker"},
		},
		WorkModel: job.WorkModelRemote,
		MinYears:  intPtr(3),
		MaxYears:  intPtr(8),
	}
}

func matchedVectors() PairVectors {
	hard := &Vector{Kind: VectorPersonaHardSkills, Values: []float32{0.1, 0.2, 0.3}}
	soft := &Vector{Kind: VectorPersonaSoftSkills, Values: []float32{0.4, 0.5, 0.6}}
	return PairVectors{
		PersonaHard:     hard,
		PersonaSoft:     soft,
		JobRequirements: &Vector{Kind: VectorJobRequirements, Values: hard.Values},
		JobCulture:      &Vector{Kind: VectorJobCulture, Values: soft.Values},
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	if err := DefaultFitWeights().Validate(); err != nil {
		t.Fatalf("fit weights: %v", err)
	}
	if err := DefaultStretchWeights().Validate(); err != nil {
		t.Fatalf("stretch weights: %v", err)
	}
	if err := DefaultGhostWeights().Validate(); err != nil {
		t.Fatalf("ghost weights: %v", err)
	}
}

func TestWeightsValidateRejectsBadSum(t *testing.T) {
	w := FitWeights{HardSkills: 0.5, SoftSkills: 0.5, ExperienceLevel: 0.5}
	if err := w.Validate(); err == nil {
		t.Fatal("expected validation error for weights summing to 1.5")
	}
}

func TestCalculateFitPerfectMatch(t *testing.T) {
	res := CalculateFit(expertProfile(), backendJob(), matchedVectors(), DefaultFitWeights())

	if res.Total < 95 {
		t.Fatalf("expected fit >= 95 for a perfect match, got %d (components %+v)", res.Total, res.Components)
	}
	if res.Total > 100 {
		t.Fatalf("total out of range: %d", res.Total)
	}
}

func TestCalculateFitIdempotent(t *testing.T) {
	p, j, v := expertProfile(), backendJob(), matchedVectors()
	first := CalculateFit(p, j, v, DefaultFitWeights())
	second := CalculateFit(p, j, v, DefaultFitWeights())
	if first != second {
		t.Fatalf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func TestExperienceBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		years int
		min   *int
		max   *int
		want  float64
	}{
		{"exactly in range", 5, intPtr(5), intPtr(8), 100},
		{"one year under", 4, intPtr(5), nil, 85},
		{"one year over", 6, nil, intPtr(5), 95},
		{"deep under clamps at zero", 0, intPtr(10), nil, 0},
		{"deep over floors at fifty", 30, nil, intPtr(5), 50},
		{"undisclosed range is neutral", 5, nil, nil, NeutralFit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := experienceComponent(tc.years, tc.min, tc.max)
			if got != tc.want {
				t.Fatalf("experienceComponent(%d) = %v, want %v", tc.years, got, tc.want)
			}
		})
	}
}

func TestHardSkillsNoRequirementsIsNeutral(t *testing.T) {
	p := expertProfile()
	j := job.Posting{Title: "Backend Engineer"}
	got := hardSkillsComponent(p, j)
	if got != NeutralFit {
		t.Fatalf("expected neutral %v when job lists no skills, got %v", NeutralFit, got)
	}
}

func TestHardSkillsSynonymNormalization(t *testing.T) {
	p := persona.Profile{Skills: []persona.Skill{
		{Name: "K8s", Type: persona.SkillTypeHard, Proficiency: persona.ProficiencyExpert},
	}}
	j := job.Posting{RequiredSkills: []job.SkillRequirement{{Name: "Kubernetes"}}}
	if got := hardSkillsComponent(p, j); got != 100 {
		t.Fatalf("synonym match should score 100, got %v", got)
	}
}

func TestLocationPenaltyOutsideCommutableCities(t *testing.T) {
	p := persona.Profile{
		RemotePreference: persona.OnsiteOK,
		NonNegotiables:   persona.NonNegotiables{CommutableCities: []string{"Berlin"}},
	}
	j := job.Posting{WorkModel: job.WorkModelOnsite, Location: "Munich"}
	got := locationComponent(p, j)
	if got != 70 {
		t.Fatalf("expected 100 * 0.70 = 70 for onsite outside commute list, got %v", got)
	}
}

func TestLocationUnknownModelIsNeutral(t *testing.T) {
	p := persona.Profile{RemotePreference: persona.HybridOK}
	j := job.Posting{WorkModel: job.WorkModelUnknown}
	if got := locationComponent(p, j); got != NeutralFit {
		t.Fatalf("expected neutral for unknown work model, got %v", got)
	}
}

func TestCosineComponentMissingVectorIsNeutral(t *testing.T) {
	if got := cosineComponent(nil, nil); got != NeutralFit {
		t.Fatalf("expected neutral for missing vectors, got %v", got)
	}
}
