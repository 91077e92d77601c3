package scoring

import (
	"testing"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
)

func TestTargetSkillsTiers(t *testing.T) {
	j := job.Posting{
		RequiredSkills:  []job.SkillRequirement{{Name: "Rust"}, {Name: "Kafka"}},
		PreferredSkills: []job.SkillRequirement{{Name: "Terraform"}, {Name: "GraphQL"}},
	}
	cases := []struct {
		name    string
		targets []string
		want    float64
	}{
		{"no matches", []string{"Elixir"}, 20},
		{"one match", []string{"Rust"}, 50},
		{"two matches", []string{"Rust", "Kafka"}, 75},
		{"three matches", []string{"Rust", "Kafka", "TF"}, 100},
		{"four matches still capped", []string{"Rust", "Kafka", "Terraform", "GraphQL"}, 100},
		{"no targets configured", nil, NeutralStretch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := persona.Profile{TargetSkills: tc.targets}
			if got := targetSkillsComponent(p, j); got != tc.want {
				t.Fatalf("targetSkillsComponent = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTargetRoleExactMatch(t *testing.T) {
	p := persona.Profile{TargetRoles: []string{"Staff Engineer"}}
	j := job.Posting{Title: "Staff Engineer"}
	if got := targetRoleComponent(p, j, PairVectors{}); got != 100 {
		t.Fatalf("exact target-role match should score 100, got %v", got)
	}
}

func TestTargetRoleNoTargetsIsNeutral(t *testing.T) {
	j := job.Posting{Title: "Staff Engineer"}
	if got := targetRoleComponent(persona.Profile{}, j, PairVectors{}); got != NeutralStretch {
		t.Fatalf("no target roles should be neutral, got %v", got)
	}
}

func TestGrowthTrajectory(t *testing.T) {
	cases := []struct {
		name    string
		current string
		title   string
		want    float64
	}{
		{"step up", "Software Engineer", "Senior Software Engineer", 100},
		{"lateral", "Senior Engineer", "Senior Backend Engineer", 60},
		{"step down", "Staff Engineer", "Junior Engineer", 25},
		{"unknown current", "", "Senior Engineer", NeutralStretch},
		{"unknown posting", "Senior Engineer", "", NeutralStretch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := growthTrajectoryComponent(tc.current, tc.title); got != tc.want {
				t.Fatalf("growthTrajectoryComponent(%q, %q) = %v, want %v", tc.current, tc.title, got, tc.want)
			}
		})
	}
}

func TestCalculateStretchTotalIsWeightedSum(t *testing.T) {
	p := persona.Profile{
		CurrentRole:  "Software Engineer",
		TargetRoles:  []string{"Senior Software Engineer"},
		TargetSkills: []string{"Rust"},
	}
	j := job.Posting{
		Title:          "Senior Software Engineer",
		RequiredSkills: []job.SkillRequirement{{Name: "Rust"}},
	}

	res := CalculateStretch(p, j, PairVectors{}, DefaultStretchWeights())
	// 100*0.50 + 50*0.40 + 100*0.10 = 80
	if res.Total != 80 {
		t.Fatalf("total = %d, want 80 (components %+v)", res.Total, res.Components)
	}
}

func TestInferSeniority(t *testing.T) {
	cases := []struct {
		title string
		want  int
	}{
		{"", LevelUnknown},
		{"Engineering Intern", LevelIntern},
		{"Junior Developer", LevelJunior},
		{"Software Engineer", LevelMid},
		{"Senior Software Engineer", LevelSenior},
		{"Staff Engineer", LevelLead},
		{"Principal Architect", LevelLead},
		{"Head of Engineering", LevelExecutive},
		{"VP Engineering", LevelExecutive},
	}
	for _, tc := range cases {
		if got := InferSeniority(tc.title); got != tc.want {
			t.Errorf("InferSeniority(%q) = %d, want %d", tc.title, got, tc.want)
		}
	}
}
