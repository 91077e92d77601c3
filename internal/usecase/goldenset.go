package usecase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// CorrelationThreshold is the offline regression target for agreement
// between algorithm output and human labels.
const CorrelationThreshold = 0.8

var ErrTooFewSamples = errors.New("golden set needs at least two matched samples")

// GoldenEntry is one human-labeled persona/job pair.
type GoldenEntry struct {
	JobID        uuid.UUID `json:"job_id"`
	HumanFit     float64   `json:"human_fit"`
	HumanStretch float64   `json:"human_stretch"`
}

// AlgorithmOutput is the engine's score for the same pair.
type AlgorithmOutput struct {
	JobID   uuid.UUID
	Fit     float64
	Stretch float64
}

type GoldenSetReport struct {
	FitCorrelation     float64 `json:"fit_correlation"`
	StretchCorrelation float64 `json:"stretch_correlation"`
	Passed             bool    `json:"passed"`
	Samples            int     `json:"samples"`
}

// ValidateGoldenSet computes the Pearson correlation between human
// labels and algorithm output, matched by job id. Both correlations
// must clear the threshold to pass.
func ValidateGoldenSet(entries []GoldenEntry, outputs []AlgorithmOutput) (GoldenSetReport, error) {
	byJob := make(map[uuid.UUID]AlgorithmOutput, len(outputs))
	for _, o := range outputs {
		byJob[o.JobID] = o
	}

	humanFit := make([]float64, 0, len(entries))
	humanStretch := make([]float64, 0, len(entries))
	algoFit := make([]float64, 0, len(entries))
	algoStretch := make([]float64, 0, len(entries))

	for _, e := range entries {
		o, ok := byJob[e.JobID]
		if !ok {
			continue
		}
		humanFit = append(humanFit, e.HumanFit)
		humanStretch = append(humanStretch, e.HumanStretch)
		algoFit = append(algoFit, o.Fit)
		algoStretch = append(algoStretch, o.Stretch)
	}

	if len(humanFit) < 2 {
		return GoldenSetReport{}, fmt.Errorf("%w: matched %d", ErrTooFewSamples, len(humanFit))
	}

	report := GoldenSetReport{
		FitCorrelation:     stat.Correlation(humanFit, algoFit, nil),
		StretchCorrelation: stat.Correlation(humanStretch, algoStretch, nil),
		Samples:            len(humanFit),
	}
	report.Passed = report.FitCorrelation > CorrelationThreshold &&
		report.StretchCorrelation > CorrelationThreshold
	return report, nil
}
