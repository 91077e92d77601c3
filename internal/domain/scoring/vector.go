package scoring

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrVectorKindMismatch = errors.New("vector kind mismatch")
	ErrVectorDimMismatch  = errors.New("vector dimension mismatch")
)

// VectorKind tags what source text a vector was built from. Requirements
// and culture text are kept in separate vectors on purpose.
type VectorKind string

const (
	VectorPersonaHardSkills VectorKind = "persona_hard_skills"
	VectorPersonaSoftSkills VectorKind = "persona_soft_skills"
	VectorPersonaLogistics  VectorKind = "persona_logistics"
	VectorJobRequirements   VectorKind = "job_requirements"
	VectorJobCulture        VectorKind = "job_culture"
)

// Vector is a fixed-length embedding tagged with its kind.
type Vector struct {
	Kind   VectorKind
	Values []float32
}

// comparablePairs lists which persona/job vector kinds may be compared.
var comparablePairs = map[VectorKind]VectorKind{
	VectorPersonaHardSkills: VectorJobRequirements,
	VectorPersonaSoftSkills: VectorJobCulture,
	VectorPersonaLogistics:  VectorJobRequirements,
}

// Cosine returns the cosine similarity of a persona vector against a job
// vector in [-1, 1]. Vectors must form an allowed kind pair and share a
// dimension; anything else is a deployment defect, not runtime data.
func Cosine(p, j Vector) (float64, error) {
	if comparablePairs[p.Kind] != j.Kind {
		return 0, fmt.Errorf("%w: %s vs %s", ErrVectorKindMismatch, p.Kind, j.Kind)
	}
	if len(p.Values) == 0 || len(p.Values) != len(j.Values) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrVectorDimMismatch, len(p.Values), len(j.Values))
	}

	a := make([]float64, len(p.Values))
	b := make([]float64, len(j.Values))
	for i := range p.Values {
		a[i] = float64(p.Values[i])
		b[i] = float64(j.Values[i])
	}

	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return floats.Dot(a, b) / (na * nb), nil
}

// CosineScore maps a cosine similarity from [-1, 1] onto [0, 100].
func CosineScore(cos float64) float64 {
	return clampScore((cos + 1) * 50)
}
