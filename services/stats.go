package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean is the arithmetic mean of xs, NaN when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Median is the middle value of xs, averaging the two middle values when len(xs)
// is even. NaN when xs is empty. xs is not modified.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Pearson is the Pearson correlation of the pairs (xs[i], ys[i]) where neither
// side is NaN. It is NaN with fewer than two pairs or zero variance on either side.
func Pearson(xs, ys []float64) float64 {
	var px, py []float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) < 2 || Variance(px) == 0 || Variance(py) == 0 {
		return math.NaN()
	}
	return stat.Correlation(px, py, nil)
}

// Variance is the unbiased sample variance of the non-NaN values of xs.
func Variance(xs []float64) float64 {
	var present []float64
	for _, x := range xs {
		if !math.IsNaN(x) {
			present = append(present, x)
		}
	}
	if len(present) < 2 {
		return 0
	}
	return stat.Variance(present, nil)
}
