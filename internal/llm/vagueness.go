package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const vaguenessPrompt = `Rate how vague the following job description is on a scale from 0 to 100.
0 means concrete: specific responsibilities, named technologies, clear expectations.
100 means vague: generic buzzwords, no specifics, could describe any job.
Respond with JSON only, exactly: {"vagueness": <number>}

Job description:
%s`

type vaguenessResponse struct {
	Vagueness float64 `json:"vagueness"`
}

// VaguenessRater estimates how vague a job description reads. It is the
// single LLM-backed staleness sub-signal.
type VaguenessRater struct {
	client Client
	log    *zap.Logger
}

func NewVaguenessRater(client Client, log *zap.Logger) *VaguenessRater {
	if log == nil {
		log = zap.NewNop()
	}
	return &VaguenessRater{client: client, log: log}
}

// Rate returns a vagueness estimate in [0, 100]. Any failure returns an
// error; callers degrade to a neutral sub-signal rather than aborting.
func (r *VaguenessRater) Rate(ctx context.Context, description string) (float64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("no llm client configured")
	}

	raw, err := r.client.CompleteJSON(ctx, fmt.Sprintf(vaguenessPrompt, description))
	if err != nil {
		return 0, fmt.Errorf("vagueness completion: %w", err)
	}

	v, err := parseVagueness(raw)
	if err != nil {
		r.log.Warn("unparseable vagueness response", zap.String("raw", raw), zap.Error(err))
		return 0, err
	}
	return v, nil
}

func parseVagueness(raw string) (float64, error) {
	var resp vaguenessResponse
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &resp); err != nil {
		return 0, fmt.Errorf("parse vagueness json: %w", err)
	}
	if resp.Vagueness < 0 || resp.Vagueness > 100 {
		return 0, fmt.Errorf("vagueness %v out of range", resp.Vagueness)
	}
	return resp.Vagueness, nil
}
