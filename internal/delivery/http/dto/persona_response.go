package dto

import (
	"time"

	"github.com/google/uuid"

	"pathmatch/internal/domain/persona"
)

type SkillResponse struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Proficiency string `json:"proficiency"`
	YearsUsed   int    `json:"years_used"`
}

type NonNegotiablesResponse struct {
	MinSalary          *int     `json:"min_salary"`
	SalaryCurrency     string   `json:"salary_currency,omitempty"`
	CommutableCities   []string `json:"commutable_cities"`
	ExcludedIndustries []string `json:"excluded_industries"`
	RequiresVisa       bool     `json:"requires_visa"`
}

type PersonaResponse struct {
	ID               uuid.UUID              `json:"id"`
	Skills           []SkillResponse        `json:"skills"`
	YearsExperience  int                    `json:"years_experience"`
	CurrentRole      string                 `json:"current_role"`
	CurrentCompany   string                 `json:"current_company,omitempty"`
	TargetRoles      []string               `json:"target_roles"`
	TargetSkills     []string               `json:"target_skills"`
	Location         string                 `json:"location,omitempty"`
	RemotePreference string                 `json:"remote_preference"`
	NonNegotiables   NonNegotiablesResponse `json:"non_negotiables"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func NewPersonaResponse(p persona.Profile) PersonaResponse {
	skills := make([]SkillResponse, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, SkillResponse{
			Name:        s.Name,
			Type:        string(s.Type),
			Proficiency: string(s.Proficiency),
			YearsUsed:   s.YearsUsed,
		})
	}
	return PersonaResponse{
		ID:               p.ID,
		Skills:           skills,
		YearsExperience:  p.YearsExperience,
		CurrentRole:      p.CurrentRole,
		CurrentCompany:   p.CurrentCompany,
		TargetRoles:      p.TargetRoles,
		TargetSkills:     p.TargetSkills,
		Location:         p.Location,
		RemotePreference: string(p.RemotePreference),
		NonNegotiables: NonNegotiablesResponse{
			MinSalary:          p.NonNegotiables.MinSalary,
			SalaryCurrency:     p.NonNegotiables.SalaryCurrency,
			CommutableCities:   p.NonNegotiables.CommutableCities,
			ExcludedIndustries: p.NonNegotiables.ExcludedIndustries,
			RequiresVisa:       p.NonNegotiables.RequiresVisa,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPersonaListResponse(in []persona.Profile) []PersonaResponse {
	out := make([]PersonaResponse, 0, len(in))
	for _, p := range in {
		out = append(out, NewPersonaResponse(p))
	}
	return out
}
