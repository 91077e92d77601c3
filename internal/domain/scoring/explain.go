package scoring

import (
	"fmt"

	"pathmatch/internal/domain/job"
)

const (
	strengthThreshold = 80.0
	gapThreshold      = 50.0
)

// Explanation is a fixed-shape, human-readable rendering of the
// component breakdowns. It is a deterministic function of its numeric
// inputs; it performs no network or storage access.
type Explanation struct {
	Strengths            []string `json:"strengths"`
	Gaps                 []string `json:"gaps"`
	StretchOpportunities []string `json:"stretch_opportunities"`
	Warnings             []string `json:"warnings"`
	Summary              string   `json:"summary_sentence"`
}

type fitLabel struct {
	strength string
	gap      string
}

var fitLabels = []struct {
	score func(FitComponents) float64
	label fitLabel
}{
	{func(c FitComponents) float64 { return c.HardSkills }, fitLabel{
		"Your technical skills closely match what this role requires.",
		"Several required technical skills are missing from your profile.",
	}},
	{func(c FitComponents) float64 { return c.SoftSkills }, fitLabel{
		"Your working style aligns well with the team culture described.",
		"The described culture differs notably from your profile.",
	}},
	{func(c FitComponents) float64 { return c.ExperienceLevel }, fitLabel{
		"Your experience level sits squarely in the requested range.",
		"Your experience level is outside the requested range.",
	}},
	{func(c FitComponents) float64 { return c.RoleTitle }, fitLabel{
		"The role title matches what you do or want to do.",
		"The role title is a departure from your current and target roles.",
	}},
	{func(c FitComponents) float64 { return c.LocationLogistics }, fitLabel{
		"Location and work model line up with your preferences.",
		"Location or work model conflicts with your preferences.",
	}},
}

var stretchLabels = []struct {
	score func(StretchComponents) float64
	text  string
}{
	{func(c StretchComponents) float64 { return c.TargetRole }, "This role matches one of your target roles."},
	{func(c StretchComponents) float64 { return c.TargetSkills }, "This role offers exposure to skills you want to grow."},
	{func(c StretchComponents) float64 { return c.GrowthTrajectory }, "This role is a step up from your current seniority."},
}

// Explain buckets each component into a strength, a gap or neither, and
// attaches warnings for job attributes worth flagging.
func Explain(fit FitResult, stretch StretchResult, ghost *GhostSignals, j job.Posting) Explanation {
	e := Explanation{
		Strengths:            make([]string, 0, len(fitLabels)),
		Gaps:                 make([]string, 0),
		StretchOpportunities: make([]string, 0),
		Warnings:             make([]string, 0),
	}

	for _, fl := range fitLabels {
		s := fl.score(fit.Components)
		switch {
		case s >= strengthThreshold:
			e.Strengths = append(e.Strengths, fl.label.strength)
		case s < gapThreshold:
			e.Gaps = append(e.Gaps, fl.label.gap)
		}
	}

	for _, sl := range stretchLabels {
		if sl.score(stretch.Components) >= strengthThreshold {
			e.StretchOpportunities = append(e.StretchOpportunities, sl.text)
		}
	}

	if !j.SalaryDisclosed() {
		e.Warnings = append(e.Warnings, "No salary information disclosed.")
	}
	if ghost != nil && (ghost.Band == BandElevated || ghost.Band == BandHighRisk) {
		e.Warnings = append(e.Warnings, ghost.Warning)
	}

	e.Summary = summarySentence(fit.Total, stretch.Total, len(e.Gaps))
	return e
}

func summarySentence(fitTotal, stretchTotal, gaps int) string {
	var quality string
	switch {
	case fitTotal >= 85:
		quality = "a strong match"
	case fitTotal >= 70:
		quality = "a good match"
	case fitTotal >= 50:
		quality = "a partial match"
	default:
		quality = "a weak match"
	}

	if stretchTotal >= 75 {
		return fmt.Sprintf("This role is %s for your profile and aligns well with your growth targets.", quality)
	}
	if gaps > 0 {
		return fmt.Sprintf("This role is %s for your profile, with %d area(s) to close.", quality, gaps)
	}
	return fmt.Sprintf("This role is %s for your profile.", quality)
}
