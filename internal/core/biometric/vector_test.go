package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_IdenticalVectors(t *testing.T) {
	v := []float64{0.1, 0.5, -0.3, 0.8}
	score, ok := CosineSimilarity(v, v)
	require.True(t, ok)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}
	score, ok := CosineSimilarity(a, b)
	require.True(t, ok)
	assert.InDelta(t, -1.0, score, 1e-9)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	score, ok := CosineSimilarity(a, b)
	require.True(t, ok)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestCosineSimilarity_Incomparable(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}},
		{"empty", nil, nil},
		{"zero vector", []float64{0, 0}, []float64{1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := CosineSimilarity(tc.a, tc.b)
			assert.False(t, ok)
		})
	}
}
