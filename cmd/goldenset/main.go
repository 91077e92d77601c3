package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"pathmatch/internal/app"
	"pathmatch/internal/config"
	"pathmatch/internal/usecase"
)

// goldenFile is the hand-labeled benchmark: one persona and the scores
// human reviewers assigned to each job.
type goldenFile struct {
	PersonaID uuid.UUID `json:"persona_id"`
	Entries   []struct {
		JobID        uuid.UUID `json:"job_id"`
		HumanFit     float64   `json:"human_fit"`
		HumanStretch float64   `json:"human_stretch"`
	} `json:"entries"`
}

func main() {
	path := flag.String("file", "goldenset.json", "path to the golden set JSON file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read golden set: %v", err)
	}
	var golden goldenFile
	if err := json.Unmarshal(raw, &golden); err != nil {
		log.Fatalf("parse golden set: %v", err)
	}
	if golden.PersonaID == uuid.Nil || len(golden.Entries) == 0 {
		log.Fatalf("golden set needs a persona_id and at least one entry")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := app.NewLogger(cfg.App)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	container, err := app.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		_ = container.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobIDs := make([]uuid.UUID, 0, len(golden.Entries))
	entries := make([]usecase.GoldenEntry, 0, len(golden.Entries))
	for _, e := range golden.Entries {
		jobIDs = append(jobIDs, e.JobID)
		entries = append(entries, usecase.GoldenEntry{
			JobID:        e.JobID,
			HumanFit:     e.HumanFit,
			HumanStretch: e.HumanStretch,
		})
	}

	scored, err := container.ScoreBatch.ScoreBatch(ctx, golden.PersonaID, jobIDs)
	if err != nil {
		log.Fatalf("score golden set: %v", err)
	}

	outputs := make([]usecase.AlgorithmOutput, 0, len(scored))
	for _, s := range scored {
		if s.Fit == nil || s.Stretch == nil {
			continue
		}
		outputs = append(outputs, usecase.AlgorithmOutput{
			JobID:   s.JobID,
			Fit:     float64(s.Fit.Total),
			Stretch: float64(s.Stretch.Total),
		})
	}

	report, err := usecase.ValidateGoldenSet(entries, outputs)
	if err != nil {
		if errors.Is(err, usecase.ErrTooFewSamples) {
			log.Fatalf("too few matched samples to correlate (filtered jobs do not count)")
		}
		log.Fatalf("validate golden set: %v", err)
	}

	fmt.Printf("samples:             %d\n", report.Samples)
	fmt.Printf("fit correlation:     %.4f\n", report.FitCorrelation)
	fmt.Printf("stretch correlation: %.4f\n", report.StretchCorrelation)
	if !report.Passed {
		fmt.Println("result: FAIL (correlation below 0.8)")
		os.Exit(1)
	}
	fmt.Println("result: PASS")
}
