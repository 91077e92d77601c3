package scoring

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidWeights = errors.New("weights must sum to 1.0")

// Neutral defaults applied when a component lacks the data to be computed.
// Missing data must never be conflated with poor fit.
const (
	NeutralFit       = 70.0
	NeutralStretch   = 50.0
	NeutralVagueness = 50.0
)

type FitWeights struct {
	HardSkills        float64
	SoftSkills        float64
	ExperienceLevel   float64
	RoleTitle         float64
	LocationLogistics float64
}

func DefaultFitWeights() FitWeights {
	return FitWeights{
		HardSkills:        0.40,
		SoftSkills:        0.15,
		ExperienceLevel:   0.25,
		RoleTitle:         0.10,
		LocationLogistics: 0.10,
	}
}

func (w FitWeights) Validate() error {
	return validateSum("fit", w.HardSkills+w.SoftSkills+w.ExperienceLevel+w.RoleTitle+w.LocationLogistics)
}

type StretchWeights struct {
	TargetRole       float64
	TargetSkills     float64
	GrowthTrajectory float64
}

func DefaultStretchWeights() StretchWeights {
	return StretchWeights{
		TargetRole:       0.50,
		TargetSkills:     0.40,
		GrowthTrajectory: 0.10,
	}
}

func (w StretchWeights) Validate() error {
	return validateSum("stretch", w.TargetRole+w.TargetSkills+w.GrowthTrajectory)
}

type GhostWeights struct {
	DaysOpen            float64
	Repost              float64
	Vagueness           float64
	MissingFields       float64
	RequirementMismatch float64
}

func DefaultGhostWeights() GhostWeights {
	return GhostWeights{
		DaysOpen:            0.30,
		Repost:              0.30,
		Vagueness:           0.20,
		MissingFields:       0.10,
		RequirementMismatch: 0.10,
	}
}

func (w GhostWeights) Validate() error {
	return validateSum("ghost", w.DaysOpen+w.Repost+w.Vagueness+w.MissingFields+w.RequirementMismatch)
}

func validateSum(name string, sum float64) error {
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: %s weights sum to %v", ErrInvalidWeights, name, sum)
	}
	return nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundScore(v float64) int {
	return int(math.Round(clampScore(v)))
}
