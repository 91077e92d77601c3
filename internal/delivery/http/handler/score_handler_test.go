package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathmatch/internal/delivery/http/handler"
	"pathmatch/internal/delivery/http/middleware"
	"pathmatch/internal/delivery/http/routes"
	"pathmatch/internal/domain/scoring"
	"pathmatch/internal/usecase"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stubScoreBatch struct {
	results []usecase.ScoredJob
	filter  scoring.FilterResult
	err     error
}

func (s *stubScoreBatch) ScoreBatch(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]usecase.ScoredJob, error) {
	return s.results, s.err
}

func (s *stubScoreBatch) FilterJob(_ context.Context, _, _ uuid.UUID) (scoring.FilterResult, error) {
	return s.filter, s.err
}

type stubGhost struct {
	signals scoring.GhostSignals
	err     error
}

func (s *stubGhost) CalculateGhostScore(_ context.Context, _ uuid.UUID) (scoring.GhostSignals, error) {
	return s.signals, s.err
}

func newScoreTestApp(scores usecase.ScoreBatchUsecase, ghost usecase.GhostUsecase) *fiber.App {
	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(zap.NewNop()).Middleware())

	reg := &routes.Registry{Scores: handler.NewScoreHandler(scores, ghost)}
	reg.Register(app)
	return app
}

func TestScoreBatchEndpoint(t *testing.T) {
	jobID := uuid.New()
	fit := scoring.FitResult{Total: 84}
	stub := &stubScoreBatch{results: []usecase.ScoredJob{{JobID: jobID, Passed: true, Fit: &fit}}}
	app := newScoreTestApp(stub, &stubGhost{})

	body, _ := json.Marshal(map[string]any{
		"persona_id": uuid.New(),
		"job_ids":    []uuid.UUID{jobID},
	})
	req := httptest.NewRequest("POST", "/api/v1/scores/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sr.Status != 200 || sr.Message != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", sr.Status, sr.Message)
	}

	var data struct {
		Results []usecase.ScoredJob `json:"results"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	if len(data.Results) != 1 || data.Results[0].JobID != jobID {
		t.Fatalf("unexpected results: %+v", data.Results)
	}
	if data.Results[0].Fit == nil || data.Results[0].Fit.Total != 84 {
		t.Fatalf("fit score lost in transit: %+v", data.Results[0].Fit)
	}
}

func TestScoreBatchRejectsEmptyRequest(t *testing.T) {
	app := newScoreTestApp(&stubScoreBatch{}, &stubGhost{})

	body, _ := json.Marshal(map[string]any{"persona_id": uuid.New()})
	req := httptest.NewRequest("POST", "/api/v1/scores/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sr.Status != 400 {
		t.Fatalf("expected 400, got %d", sr.Status)
	}
}

func TestScoreBatchUnknownPersonaIs404(t *testing.T) {
	app := newScoreTestApp(&stubScoreBatch{err: usecase.ErrPersonaNotFound}, &stubGhost{})

	body, _ := json.Marshal(map[string]any{
		"persona_id": uuid.New(),
		"job_ids":    []uuid.UUID{uuid.New()},
	})
	req := httptest.NewRequest("POST", "/api/v1/scores/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sr.Status != 404 {
		t.Fatalf("expected 404, got %d", sr.Status)
	}
}

func TestGhostEndpoint(t *testing.T) {
	stub := &stubGhost{signals: scoring.GhostSignals{Score: 27, Band: scoring.BandModerate}}
	app := newScoreTestApp(&stubScoreBatch{}, stub)

	req := httptest.NewRequest("GET", "/api/v1/jobs/"+uuid.NewString()+"/ghost", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("expected 200, got %d (%s)", sr.Status, sr.Message)
	}

	var signals scoring.GhostSignals
	if err := json.Unmarshal(sr.Data, &signals); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	if signals.Score != 27 || signals.Band != scoring.BandModerate {
		t.Fatalf("unexpected signals: %+v", signals)
	}
}

func TestGhostBadJobID(t *testing.T) {
	app := newScoreTestApp(&stubScoreBatch{}, &stubGhost{})

	req := httptest.NewRequest("GET", "/api/v1/jobs/not-a-uuid/ghost", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if sr.Status != 400 {
		t.Fatalf("expected 400, got %d", sr.Status)
	}
}
