package scoring

import (
	"strings"
	"time"

	"pathmatch/internal/domain/job"
)

// Band buckets a ghost score into a user-facing risk tier.
type Band string

const (
	BandFresh    Band = "fresh"
	BandModerate Band = "moderate"
	BandElevated Band = "elevated"
	BandHighRisk Band = "high_risk"
)

var bandWarnings = map[Band]string{
	BandFresh:    "Posting looks fresh and actively maintained.",
	BandModerate: "Posting shows some staleness signals; apply soon if interested.",
	BandElevated: "Posting has elevated staleness signals; it may no longer be actively hiring.",
	BandHighRisk: "Posting is likely stale or fabricated; treat with caution.",
}

type GhostComponents struct {
	DaysOpen            float64 `json:"days_open"`
	Repost              float64 `json:"repost"`
	Vagueness           float64 `json:"vagueness"`
	MissingFields       float64 `json:"missing_fields"`
	RequirementMismatch float64 `json:"requirement_mismatch"`
}

// GhostSignals is immutable once computed. Degraded is set when the
// vagueness sub-signal fell back to its neutral default because the
// language model was unavailable.
type GhostSignals struct {
	Score      int             `json:"score"`
	Band       Band            `json:"band"`
	Warning    string          `json:"warning"`
	Components GhostComponents `json:"components"`
	Weights    GhostWeights    `json:"weights"`
	Degraded   bool            `json:"degraded"`
}

// CalculateGhost scores staleness from deterministic posting attributes
// plus an optional LLM-estimated vagueness. A nil vagueness degrades to
// the neutral default rather than aborting the score.
func CalculateGhost(j job.Posting, vagueness *float64, now time.Time, w GhostWeights) GhostSignals {
	c := GhostComponents{
		DaysOpen:            daysOpenSignal(j, now),
		Repost:              repostSignal(j.RepostCount),
		Vagueness:           NeutralVagueness,
		MissingFields:       missingFieldsSignal(j),
		RequirementMismatch: requirementMismatchSignal(j),
	}

	degraded := vagueness == nil
	if vagueness != nil {
		c.Vagueness = clampScore(*vagueness)
	}

	total := c.DaysOpen*w.DaysOpen +
		c.Repost*w.Repost +
		c.Vagueness*w.Vagueness +
		c.MissingFields*w.MissingFields +
		c.RequirementMismatch*w.RequirementMismatch

	score := roundScore(total)
	band := bandFor(score)
	return GhostSignals{
		Score:      score,
		Band:       band,
		Warning:    bandWarnings[band],
		Components: c,
		Weights:    w,
		Degraded:   degraded,
	}
}

func bandFor(score int) Band {
	switch {
	case score <= 25:
		return BandFresh
	case score <= 50:
		return BandModerate
	case score <= 75:
		return BandElevated
	default:
		return BandHighRisk
	}
}

// daysOpenSignal uses a discrete step function rather than a smooth
// curve: the signal is an early-warning trigger, not an estimate.
func daysOpenSignal(j job.Posting, now time.Time) float64 {
	ref := j.PostedDate
	if ref == nil {
		ref = j.FirstSeenDate
	}
	if ref == nil {
		return NeutralVagueness
	}
	days := int(now.Sub(*ref).Hours() / 24)
	switch {
	case days <= 7:
		return 0
	case days <= 21:
		return 35
	case days <= 45:
		return 70
	default:
		return 100
	}
}

func repostSignal(count int) float64 {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 30
	case count == 2:
		return 60
	default:
		return 100
	}
}

// missingFieldsSignal counts undisclosed attributes that a legitimate
// posting usually carries: salary, deadline, location, posted date and
// seniority, 20 points each.
func missingFieldsSignal(j job.Posting) float64 {
	missing := 0
	if !j.SalaryDisclosed() {
		missing++
	}
	if j.ApplicationDeadline == nil {
		missing++
	}
	if strings.TrimSpace(j.Location) == "" {
		missing++
	}
	if j.PostedDate == nil {
		missing++
	}
	if strings.TrimSpace(j.SeniorityLevel) == "" {
		missing++
	}
	return float64(missing * 20)
}

// requirementMismatchSignal flags postings whose title seniority
// contradicts the requested experience range, a common fabrication tell.
func requirementMismatchSignal(j job.Posting) float64 {
	level := InferSeniority(j.Title)
	if level == LevelUnknown {
		return 0
	}
	if j.MinYears == nil && j.MaxYears == nil {
		return 0
	}

	minExpected, maxExpected := expectedYears(level)
	if j.MinYears != nil && maxExpected >= 0 && *j.MinYears > maxExpected {
		return 100
	}
	if j.MaxYears != nil && *j.MaxYears < minExpected {
		return 100
	}
	return 0
}

// expectedYears returns the plausible experience range for an inferred
// level. maxExpected of -1 means unbounded.
func expectedYears(level int) (int, int) {
	switch level {
	case LevelIntern:
		return 0, 1
	case LevelJunior:
		return 0, 3
	case LevelMid:
		return 1, 6
	case LevelSenior:
		return 4, 12
	case LevelLead:
		return 6, -1
	case LevelExecutive:
		return 8, -1
	default:
		return 0, -1
	}
}
