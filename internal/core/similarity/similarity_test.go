package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineIdenticalVectors(t *testing.T) {
	v := []float32{0.5, 0.3, 0.2}

	score, err := Cosine(v, v)

	assert.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-6)
}

func TestCosineOrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	score, err := Cosine(a, b)

	assert.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-6)
}

func TestCosineOppositeVectorsClampedToZero(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}

	score, err := Cosine(a, b)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCosineZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}

	score, err := Cosine(a, b)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCosineDimensionMismatch(t *testing.T) {
	a := []float32{1, 2}
	b := []float32{1, 2, 3}

	_, err := Cosine(a, b)

	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
