package persona

import (
	"time"

	"github.com/google/uuid"
)

type SkillType string

const (
	SkillTypeHard SkillType = "hard"
	SkillTypeSoft SkillType = "soft"
)

type Proficiency string

const (
	ProficiencyLearning   Proficiency = "learning"
	ProficiencyFamiliar   Proficiency = "familiar"
	ProficiencyProficient Proficiency = "proficient"
	ProficiencyExpert     Proficiency = "expert"
)

type RemotePreference string

const (
	RemoteOnly RemotePreference = "remote_only"
	HybridOK   RemotePreference = "hybrid_ok"
	OnsiteOK   RemotePreference = "onsite_ok"
)

type Skill struct {
	Name        string
	Type        SkillType
	Proficiency Proficiency
	YearsUsed   int
	LastUsed    *time.Time
}

// NonNegotiables are the hard pass/fail rules evaluated before any scoring.
// A zero value for an optional field means the rule is not configured.
type NonNegotiables struct {
	MinSalary          *int
	SalaryCurrency     string
	CommutableCities   []string
	ExcludedIndustries []string
	RequiresVisa       bool
}

type Profile struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Skills           []Skill
	YearsExperience  int
	CurrentRole      string
	CurrentCompany   string
	TargetRoles      []string
	TargetSkills     []string
	Location         string
	RemotePreference RemotePreference
	NonNegotiables   NonNegotiables
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Profile) HardSkills() []Skill {
	out := make([]Skill, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s.Type == SkillTypeHard {
			out = append(out, s)
		}
	}
	return out
}

func (p Profile) SoftSkills() []Skill {
	out := make([]Skill, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s.Type == SkillTypeSoft {
			out = append(out, s)
		}
	}
	return out
}
