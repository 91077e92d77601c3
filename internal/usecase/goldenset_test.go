package usecase

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestValidateGoldenSetPasses(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	entries := []GoldenEntry{
		{JobID: ids[0], HumanFit: 90, HumanStretch: 80},
		{JobID: ids[1], HumanFit: 70, HumanStretch: 60},
		{JobID: ids[2], HumanFit: 50, HumanStretch: 40},
		{JobID: ids[3], HumanFit: 30, HumanStretch: 20},
	}
	// Slightly offset but strongly correlated.
	outputs := []AlgorithmOutput{
		{JobID: ids[0], Fit: 88, Stretch: 78},
		{JobID: ids[1], Fit: 72, Stretch: 65},
		{JobID: ids[2], Fit: 48, Stretch: 42},
		{JobID: ids[3], Fit: 35, Stretch: 25},
	}

	report, err := ValidateGoldenSet(entries, outputs)
	if err != nil {
		t.Fatalf("ValidateGoldenSet: %v", err)
	}
	if !report.Passed {
		t.Fatalf("expected pass, got fit=%v stretch=%v", report.FitCorrelation, report.StretchCorrelation)
	}
	if report.Samples != 4 {
		t.Fatalf("expected 4 matched samples, got %d", report.Samples)
	}
}

func TestValidateGoldenSetFailsOnDisagreement(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	entries := []GoldenEntry{
		{JobID: ids[0], HumanFit: 90, HumanStretch: 80},
		{JobID: ids[1], HumanFit: 70, HumanStretch: 60},
		{JobID: ids[2], HumanFit: 50, HumanStretch: 40},
		{JobID: ids[3], HumanFit: 30, HumanStretch: 20},
	}
	// Anti-correlated output.
	outputs := []AlgorithmOutput{
		{JobID: ids[0], Fit: 20, Stretch: 30},
		{JobID: ids[1], Fit: 45, Stretch: 50},
		{JobID: ids[2], Fit: 75, Stretch: 70},
		{JobID: ids[3], Fit: 95, Stretch: 85},
	}

	report, err := ValidateGoldenSet(entries, outputs)
	if err != nil {
		t.Fatalf("ValidateGoldenSet: %v", err)
	}
	if report.Passed {
		t.Fatal("anti-correlated output must not pass")
	}
}

func TestValidateGoldenSetNeedsSamples(t *testing.T) {
	id := uuid.New()
	entries := []GoldenEntry{{JobID: id, HumanFit: 90, HumanStretch: 80}}
	outputs := []AlgorithmOutput{{JobID: id, Fit: 88, Stretch: 78}}

	if _, err := ValidateGoldenSet(entries, outputs); !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("expected ErrTooFewSamples, got %v", err)
	}

	if _, err := ValidateGoldenSet(entries, nil); !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("expected ErrTooFewSamples with no outputs, got %v", err)
	}
}
