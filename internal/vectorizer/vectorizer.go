// Package vectorizer provides the dense vector and categorical encoding
// helpers shared by features and models.
package vectorizer

import "math"

// Zeros returns a zero vector of the given dimension.
func Zeros(dim int) []float64 {
	return make([]float64, dim)
}

// Concat concatenates vectors in order into a single vector.
func Concat(vectors ...[]float64) []float64 {
	total := 0
	for _, v := range vectors {
		total += len(v)
	}
	out := make([]float64, 0, total)
	for _, v := range vectors {
		out = append(out, v...)
	}
	return out
}

// Dot computes the dot product of two vectors over their common prefix.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := range n {
		sum += a[i] * b[i]
	}
	return sum
}

// Argmax returns the index of the largest value, the first one on ties.
// It returns -1 for an empty slice.
func Argmax(values []float64) int {
	best := -1
	bestVal := math.Inf(-1)
	for i, v := range values {
		if best < 0 || v > bestVal {
			best = i
			bestVal = v
		}
	}
	return best
}

// L2Norm returns the L2 norm of the vector.
func L2Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
