package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"pathmatch/internal/domain/job"
	"pathmatch/internal/domain/persona"
	"pathmatch/internal/domain/scoring"
)

// SourceText builds the canonical text a vector of the given kind is
// computed from. Cache staleness is detected by hashing this exact
// text, so the construction must be deterministic.
func SourceText(kind scoring.VectorKind, p *persona.Profile, j *job.Posting) string {
	switch kind {
	case scoring.VectorPersonaHardSkills:
		return personaHardText(p)
	case scoring.VectorPersonaSoftSkills:
		return personaSoftText(p)
	case scoring.VectorPersonaLogistics:
		return personaLogisticsText(p)
	case scoring.VectorJobRequirements:
		return jobRequirementsText(j)
	case scoring.VectorJobCulture:
		return jobCultureText(j)
	default:
		return ""
	}
}

// SourceHash fingerprints source text for cache-staleness detection.
func SourceHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func personaHardText(p *persona.Profile) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Role: ")
	b.WriteString(p.CurrentRole)
	b.WriteString(". Skills:")
	for _, s := range p.HardSkills() {
		fmt.Fprintf(&b, " %s (%s, %d years);", s.Name, s.Proficiency, s.YearsUsed)
	}
	fmt.Fprintf(&b, " Total experience: %d years.", p.YearsExperience)
	return b.String()
}

func personaSoftText(p *persona.Profile) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Working style and strengths:")
	for _, s := range p.SoftSkills() {
		fmt.Fprintf(&b, " %s (%s);", s.Name, s.Proficiency)
	}
	return b.String()
}

func personaLogisticsText(p *persona.Profile) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %s. Work preference: %s.", p.Location, p.RemotePreference)
	if len(p.NonNegotiables.CommutableCities) > 0 {
		fmt.Fprintf(&b, " Commutable cities: %s.", strings.Join(p.NonNegotiables.CommutableCities, ", "))
	}
	return b.String()
}

func jobRequirementsText(j *job.Posting) string {
	if j == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s at %s. Required:", j.Title, j.Company)
	for _, r := range j.RequiredSkills {
		b.WriteString(" ")
		b.WriteString(r.Name)
		b.WriteString(";")
	}
	if len(j.PreferredSkills) > 0 {
		b.WriteString(" Preferred:")
		for _, r := range j.PreferredSkills {
			b.WriteString(" ")
			b.WriteString(r.Name)
			b.WriteString(";")
		}
	}
	if j.SeniorityLevel != "" {
		fmt.Fprintf(&b, " Seniority: %s.", j.SeniorityLevel)
	}
	return b.String()
}

// jobCultureText uses only the LLM-derived culture text; requirements
// never leak into the culture vector.
func jobCultureText(j *job.Posting) string {
	if j == nil {
		return ""
	}
	return strings.TrimSpace(j.CultureText)
}
