// Package biometric holds the identity resolver and the embedding-vector
// math it scores candidates with. The embedding model itself is opaque and
// lives behind ports.EmbeddingProvider; this package only ever sees feature
// vectors.
package biometric

import "math"

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. The second return is false when the vectors cannot be compared:
// mismatched lengths (templates from a different model revision) or a
// degenerate zero vector.
func CosineSimilarity(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
