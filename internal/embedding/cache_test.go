package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"pathmatch/internal/domain/scoring"
)

type fakeProvider struct {
	calls     int
	lastTexts []string
	fail      error
}

func (f *fakeProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	f.lastTexts = texts
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1, 2}
	}
	return out, nil
}

func (f *fakeProvider) Dimension() int { return 3 }

func TestGetOrComputeCachesByHash(t *testing.T) {
	provider := &fakeProvider{}
	cache, err := NewCache(provider, nil, 16, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	id := uuid.New()
	req := Request{EntityID: id, Kind: scoring.VectorPersonaHardSkills, SourceText: "go postgresql kubernetes"}

	first, err := cache.GetOrCompute(context.Background(), []Request{req})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := cache.GetOrCompute(context.Background(), []Request{req})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if provider.calls != 1 {
		t.Fatalf("unchanged source text must hit the cache, provider called %d times", provider.calls)
	}
	if first[0].Kind != scoring.VectorPersonaHardSkills || len(second[0].Values) != 3 {
		t.Fatalf("unexpected vectors: %+v / %+v", first, second)
	}
}

func TestGetOrComputeRecomputesOnSourceEdit(t *testing.T) {
	provider := &fakeProvider{}
	cache, _ := NewCache(provider, nil, 16, nil)

	id := uuid.New()
	before := Request{EntityID: id, Kind: scoring.VectorPersonaHardSkills, SourceText: "go postgresql"}
	after := Request{EntityID: id, Kind: scoring.VectorPersonaHardSkills, SourceText: "go postgresql rust"}

	if _, err := cache.GetOrCompute(context.Background(), []Request{before}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := cache.GetOrCompute(context.Background(), []Request{after}); err != nil {
		t.Fatalf("after edit: %v", err)
	}

	if provider.calls != 2 {
		t.Fatalf("edited source text must recompute, provider called %d times", provider.calls)
	}
}

func TestGetOrComputeBatchesMissesIntoOneCall(t *testing.T) {
	provider := &fakeProvider{}
	cache, _ := NewCache(provider, nil, 16, nil)

	reqs := []Request{
		{EntityID: uuid.New(), Kind: scoring.VectorJobRequirements, SourceText: "job one requirements"},
		{EntityID: uuid.New(), Kind: scoring.VectorJobRequirements, SourceText: "job two requirements"},
		{EntityID: uuid.New(), Kind: scoring.VectorJobCulture, SourceText: "job three culture"},
	}

	out, err := cache.GetOrCompute(context.Background(), reqs)
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("all misses must be embedded in one bulk call, got %d calls", provider.calls)
	}
	if len(provider.lastTexts) != 3 {
		t.Fatalf("expected 3 texts in the bulk call, got %d", len(provider.lastTexts))
	}
	if len(out) != 3 || out[2].Kind != scoring.VectorJobCulture {
		t.Fatalf("results must preserve request order: %+v", out)
	}
}

func TestInvalidateDropsAllKindsForEntity(t *testing.T) {
	provider := &fakeProvider{}
	cache, _ := NewCache(provider, nil, 16, nil)

	id := uuid.New()
	other := uuid.New()
	reqs := []Request{
		{EntityID: id, Kind: scoring.VectorPersonaHardSkills, SourceText: "hard"},
		{EntityID: id, Kind: scoring.VectorPersonaSoftSkills, SourceText: "soft"},
		{EntityID: other, Kind: scoring.VectorJobRequirements, SourceText: "job"},
	}
	if _, err := cache.GetOrCompute(context.Background(), reqs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := cache.Invalidate(context.Background(), id); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected only the other entity to remain, have %d entries", cache.Len())
	}

	if _, err := cache.GetOrCompute(context.Background(), reqs[:2]); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("invalidated entries must recompute, provider called %d times", provider.calls)
	}
}

func TestClearPurgesEverything(t *testing.T) {
	provider := &fakeProvider{}
	cache, _ := NewCache(provider, nil, 4, nil)

	if _, err := cache.GetOrCompute(context.Background(), []Request{
		{EntityID: uuid.New(), Kind: scoring.VectorJobCulture, SourceText: "culture"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, have %d", cache.Len())
	}
}

func TestProviderFailurePropagates(t *testing.T) {
	provider := &fakeProvider{fail: &ProviderError{Kind: FailureRateLimited, Err: errors.New("429")}}
	cache, _ := NewCache(provider, nil, 4, nil)

	_, err := cache.GetOrCompute(context.Background(), []Request{
		{EntityID: uuid.New(), Kind: scoring.VectorJobCulture, SourceText: "culture"},
	})
	if err == nil {
		t.Fatal("expected provider failure to propagate")
	}
	if !IsRetryable(err) {
		t.Fatal("rate-limited failures must be retryable")
	}
}

func TestIsRetryableClassification(t *testing.T) {
	cases := []struct {
		kind FailureKind
		want bool
	}{
		{FailureRateLimited, true},
		{FailureTransient, true},
		{FailureAuth, false},
		{FailureModelNotFound, false},
		{FailureContentFiltered, false},
		{FailureContextTooLong, false},
	}
	for _, tc := range cases {
		err := &ProviderError{Kind: tc.kind, Err: errors.New("boom")}
		if got := IsRetryable(err); got != tc.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}
