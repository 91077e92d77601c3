package scoring

import (
	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
)

type StretchComponents struct {
	TargetRole       float64 `json:"target_role"`
	TargetSkills     float64 `json:"target_skills"`
	GrowthTrajectory float64 `json:"growth_trajectory"`
}

type StretchResult struct {
	Total      int               `json:"total"`
	Components StretchComponents `json:"components"`
	Weights    StretchWeights    `json:"weights"`
}

// CalculateStretch computes the growth-alignment score. Missing
// growth-target data defaults to a neutral 50.
func CalculateStretch(p persona.Profile, j job.Posting, vecs PairVectors, w StretchWeights) StretchResult {
	c := StretchComponents{
		TargetRole:       targetRoleComponent(p, j, vecs),
		TargetSkills:     targetSkillsComponent(p, j),
		GrowthTrajectory: growthTrajectoryComponent(p.CurrentRole, j.Title),
	}

	total := c.TargetRole*w.TargetRole +
		c.TargetSkills*w.TargetSkills +
		c.GrowthTrajectory*w.GrowthTrajectory

	return StretchResult{Total: roundScore(total), Components: c, Weights: w}
}

func targetRoleComponent(p persona.Profile, j job.Posting, vecs PairVectors) float64 {
	if len(p.TargetRoles) == 0 {
		return NeutralStretch
	}
	jobTitle := NormalizeTitle(j.Title)
	if jobTitle == "" {
		return NeutralStretch
	}
	for _, t := range p.TargetRoles {
		if NormalizeTitle(t) == jobTitle {
			return 100
		}
	}
	if vecs.PersonaHard == nil || vecs.JobRequirements == nil {
		return NeutralStretch
	}
	cos, err := Cosine(*vecs.PersonaHard, *vecs.JobRequirements)
	if err != nil {
		return NeutralStretch
	}
	return CosineScore(cos)
}

// targetSkillsComponent is tiered, not linear: any exposure to a growth
// skill matters disproportionately more than incremental counting.
func targetSkillsComponent(p persona.Profile, j job.Posting) float64 {
	if len(p.TargetSkills) == 0 {
		return NeutralStretch
	}

	jobSkills := make(map[string]struct{}, len(j.RequiredSkills)+len(j.PreferredSkills))
	for _, r := range j.RequiredSkills {
		jobSkills[NormalizeSkill(r.Name)] = struct{}{}
	}
	for _, r := range j.PreferredSkills {
		jobSkills[NormalizeSkill(r.Name)] = struct{}{}
	}

	matches := 0
	for _, t := range p.TargetSkills {
		if _, ok := jobSkills[NormalizeSkill(t)]; ok {
			matches++
		}
	}

	switch {
	case matches >= 3:
		return 100
	case matches == 2:
		return 75
	case matches == 1:
		return 50
	default:
		return 20
	}
}

func growthTrajectoryComponent(currentRole, jobTitle string) float64 {
	cur := InferSeniority(currentRole)
	next := InferSeniority(jobTitle)
	if cur == LevelUnknown || next == LevelUnknown {
		return NeutralStretch
	}
	switch {
	case next > cur:
		return 100
	case next == cur:
		return 60
	default:
		return 25
	}
}
