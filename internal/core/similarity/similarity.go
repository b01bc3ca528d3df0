// Package similarity provides the cosine-similarity primitive used for
// folder matching.
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch indicates two vectors of different lengths were
// compared, usually a sign of mixed embedding models.
var ErrDimensionMismatch = errors.New("embedding dimensions must match")

// Cosine computes the cosine similarity of a and b clamped to [0, 1].
// A zero-norm vector yields 0.0: no similarity, not an error. Negative
// cosine values are floored to 0 since only positive semantic alignment
// matters here.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(0, math.Min(1, sim)), nil
}
