package scoring

import (
	"strings"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
)

// PairVectors carries the embeddings available for one persona/job pair.
// A nil vector means the embedding could not be produced; the affected
// component falls back to its neutral default.
type PairVectors struct {
	PersonaHard      *Vector
	PersonaSoft      *Vector
	PersonaLogistics *Vector
	JobRequirements  *Vector
	JobCulture       *Vector
}

type FitComponents struct {
	HardSkills        float64 `json:"hard_skills"`
	SoftSkills        float64 `json:"soft_skills"`
	ExperienceLevel   float64 `json:"experience_level"`
	RoleTitle         float64 `json:"role_title"`
	LocationLogistics float64 `json:"location_logistics"`
}

// FitResult is immutable once computed. Total is rounded at the top
// level only; components keep full precision for explanations.
type FitResult struct {
	Total      int           `json:"total"`
	Components FitComponents `json:"components"`
	Weights    FitWeights    `json:"weights"`
}

var proficiencyScores = map[persona.Proficiency]float64{
	persona.ProficiencyLearning:   40,
	persona.ProficiencyFamiliar:   60,
	persona.ProficiencyProficient: 85,
	persona.ProficiencyExpert:     100,
}

// CalculateFit computes the 5-component weighted fit score. Weights are
// assumed validated at construction time.
func CalculateFit(p persona.Profile, j job.Posting, vecs PairVectors, w FitWeights) FitResult {
	c := FitComponents{
		HardSkills:        hardSkillsComponent(p, j),
		SoftSkills:        cosineComponent(vecs.PersonaSoft, vecs.JobCulture),
		ExperienceLevel:   experienceComponent(p.YearsExperience, j.MinYears, j.MaxYears),
		RoleTitle:         roleTitleComponent(p, j, vecs),
		LocationLogistics: locationComponent(p, j),
	}

	total := c.HardSkills*w.HardSkills +
		c.SoftSkills*w.SoftSkills +
		c.ExperienceLevel*w.ExperienceLevel +
		c.RoleTitle*w.RoleTitle +
		c.LocationLogistics*w.LocationLogistics

	return FitResult{Total: roundScore(total), Components: c, Weights: w}
}

// hardSkillsComponent averages per-skill proficiency matches, weighting
// required skills 0.80 and nice-to-have skills 0.20.
func hardSkillsComponent(p persona.Profile, j job.Posting) float64 {
	if len(j.RequiredSkills) == 0 && len(j.PreferredSkills) == 0 {
		return NeutralFit
	}

	bySkill := make(map[string]persona.Skill, len(p.Skills))
	for _, s := range p.HardSkills() {
		key := NormalizeSkill(s.Name)
		if key == "" {
			continue
		}
		bySkill[key] = s
	}

	reqScore, reqOK := skillGroupScore(bySkill, j.RequiredSkills)
	prefScore, prefOK := skillGroupScore(bySkill, j.PreferredSkills)

	switch {
	case reqOK && prefOK:
		return clampScore(reqScore*0.80 + prefScore*0.20)
	case reqOK:
		return clampScore(reqScore)
	case prefOK:
		return clampScore(prefScore)
	default:
		return NeutralFit
	}
}

func skillGroupScore(bySkill map[string]persona.Skill, reqs []job.SkillRequirement) (float64, bool) {
	if len(reqs) == 0 {
		return 0, false
	}

	sum := 0.0
	for _, r := range reqs {
		key := NormalizeSkill(r.Name)
		s, ok := bySkill[key]
		if !ok {
			continue
		}
		score := proficiencyScores[s.Proficiency]
		if score == 0 {
			score = proficiencyScores[persona.ProficiencyFamiliar]
		}
		if r.YearsRequested > 0 && s.YearsUsed > 0 && s.YearsUsed < r.YearsRequested {
			score *= float64(s.YearsUsed) / float64(r.YearsRequested)
		}
		sum += score
	}
	return sum / float64(len(reqs)), true
}

// cosineComponent maps an embedding similarity to [0,100], defaulting to
// neutral when either vector is unavailable.
func cosineComponent(pv, jv *Vector) float64 {
	if pv == nil || jv == nil {
		return NeutralFit
	}
	cos, err := Cosine(*pv, *jv)
	if err != nil {
		return NeutralFit
	}
	return CosineScore(cos)
}

// experienceComponent penalizes under-qualification at 3x the rate of
// over-qualification: employers discount missing-requirement risk more
// heavily than "too senior" risk.
func experienceComponent(years int, minYears, maxYears *int) float64 {
	if minYears == nil && maxYears == nil {
		return NeutralFit
	}
	if minYears != nil && years < *minYears {
		gap := float64(*minYears - years)
		return clampScore(100 - gap*15)
	}
	if maxYears != nil && years > *maxYears {
		gap := float64(years - *maxYears)
		score := 100 - gap*5
		if score < 50 {
			score = 50
		}
		return score
	}
	return 100
}

func roleTitleComponent(p persona.Profile, j job.Posting, vecs PairVectors) float64 {
	jobTitle := NormalizeTitle(j.Title)
	if jobTitle == "" {
		return NeutralFit
	}
	if NormalizeTitle(p.CurrentRole) == jobTitle {
		return 100
	}
	for _, t := range p.TargetRoles {
		if NormalizeTitle(t) == jobTitle {
			return 100
		}
	}
	// No exact match: fall back to semantic similarity over the
	// requirements pair (requirement texts lead with the title).
	return cosineComponent(vecs.PersonaHard, vecs.JobRequirements)
}

// locationBase is the preference matrix: remote preference x work model.
var locationBase = map[persona.RemotePreference]map[job.WorkModel]float64{
	persona.RemoteOnly: {
		job.WorkModelRemote: 100,
		job.WorkModelHybrid: 35,
		job.WorkModelOnsite: 10,
	},
	persona.HybridOK: {
		job.WorkModelRemote: 90,
		job.WorkModelHybrid: 100,
		job.WorkModelOnsite: 60,
	},
	persona.OnsiteOK: {
		job.WorkModelRemote: 80,
		job.WorkModelHybrid: 90,
		job.WorkModelOnsite: 100,
	},
}

func locationComponent(p persona.Profile, j job.Posting) float64 {
	row, ok := locationBase[p.RemotePreference]
	if !ok {
		return NeutralFit
	}
	base, ok := row[j.WorkModel]
	if !ok {
		return NeutralFit
	}

	if j.WorkModel != job.WorkModelRemote && !cityCommutable(p.NonNegotiables.CommutableCities, j.Location) {
		base *= 0.70
	}
	return clampScore(base)
}

func cityCommutable(cities []string, jobLocation string) bool {
	loc := NormalizeTitle(jobLocation)
	if loc == "" {
		// Undisclosed location: benefit of the doubt.
		return true
	}
	if len(cities) == 0 {
		return false
	}
	for _, c := range cities {
		cn := NormalizeTitle(c)
		if cn != "" && (cn == loc || strings.Contains(loc, cn)) {
			return true
		}
	}
	return false
}
