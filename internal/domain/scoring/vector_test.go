package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestCosineRejectsKindMismatch(t *testing.T) {
	p := Vector{Kind: VectorPersonaHardSkills, Values: []float32{1, 0}}
	j := Vector{Kind: VectorJobCulture, Values: []float32{1, 0}}
	if _, err := Cosine(p, j); !errors.Is(err, ErrVectorKindMismatch) {
		t.Fatalf("expected kind mismatch error, got %v", err)
	}
}

func TestCosineRejectsDimensionMismatch(t *testing.T) {
	p := Vector{Kind: VectorPersonaHardSkills, Values: []float32{1, 0, 0}}
	j := Vector{Kind: VectorJobRequirements, Values: []float32{1, 0}}
	if _, err := Cosine(p, j); !errors.Is(err, ErrVectorDimMismatch) {
		t.Fatalf("expected dimension mismatch error, got %v", err)
	}
}

func TestCosineIdenticalVectors(t *testing.T) {
	p := Vector{Kind: VectorPersonaSoftSkills, Values: []float32{0.3, 0.7, 0.1}}
	j := Vector{Kind: VectorJobCulture, Values: []float32{0.3, 0.7, 0.1}}
	cos, err := Cosine(p, j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cos-1.0) > 1e-6 {
		t.Fatalf("cosine of identical vectors = %v, want 1.0", cos)
	}
}

func TestCosineOrthogonalVectors(t *testing.T) {
	p := Vector{Kind: VectorPersonaHardSkills, Values: []float32{1, 0}}
	j := Vector{Kind: VectorJobRequirements, Values: []float32{0, 1}}
	cos, err := Cosine(p, j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cos != 0 {
		t.Fatalf("cosine of orthogonal vectors = %v, want 0", cos)
	}
}

func TestCosineZeroVectorIsZeroSimilarity(t *testing.T) {
	p := Vector{Kind: VectorPersonaHardSkills, Values: []float32{0, 0}}
	j := Vector{Kind: VectorJobRequirements, Values: []float32{1, 1}}
	cos, err := Cosine(p, j)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cos != 0 {
		t.Fatalf("zero-norm vector should yield 0, got %v", cos)
	}
}

func TestCosineScoreMapping(t *testing.T) {
	cases := []struct {
		cos  float64
		want float64
	}{
		{-1, 0},
		{0, 50},
		{1, 100},
		{0.5, 75},
	}
	for _, tc := range cases {
		if got := CosineScore(tc.cos); got != tc.want {
			t.Errorf("CosineScore(%v) = %v, want %v", tc.cos, got, tc.want)
		}
	}
}

func TestNormalizeSkill(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"K8s", "kubernetes"},
		{"  GoLang ", "go"},
		{"Postgres", "postgresql"},
		{"React", "react"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSkill(tc.in); got != tc.want {
			t.Errorf("NormalizeSkill(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := NormalizeTitle("Sr. Backend Engineer (Go)"); got != "sr backend engineer go" {
		t.Fatalf("NormalizeTitle = %q", got)
	}
}
