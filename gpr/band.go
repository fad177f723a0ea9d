package gpr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// StdDev returns the square roots of the diagonal of cov.
func StdDev(cov mat.Symmetric) []float64 {
	n := cov.SymmetricDim()
	std := make([]float64, n)
	for i := range std {
		std[i] = math.Sqrt(math.Max(cov.At(i, i), 0))
	}
	return std
}

// Band returns mean ∓ z·std. z = 2 gives the usual 95% band.
func Band(mean, std []float64, z float64) (lower, upper []float64) {
	lower = make([]float64, len(mean))
	upper = make([]float64, len(mean))
	for i := range mean {
		lower[i] = mean[i] - z*std[i]
		upper[i] = mean[i] + z*std[i]
	}
	return lower, upper
}
