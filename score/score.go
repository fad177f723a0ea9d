// Package score measures forecasts against held-out observations.
package score

import (
	"math"

	. "bitbucket.org/dtolpin/infergo/dist"
)

// NLPD is the negative log predictive density of y under
// N(mean, std²).
func NLPD(y, mean, std float64) float64 {
	return -Normal.Logp(mean, std, y)
}

// MeanNLPD averages NLPD over a forecast.
func MeanNLPD(y, mean, std []float64) float64 {
	if len(y) == 0 {
		return math.NaN()
	}
	sum := 0.
	for i := range y {
		sum += NLPD(y[i], mean[i], std[i])
	}
	return sum / float64(len(y))
}

// RMSE is the root mean squared error of the mean forecast.
func RMSE(y, mean []float64) float64 {
	if len(y) == 0 {
		return math.NaN()
	}
	sum := 0.
	for i := range y {
		d := y[i] - mean[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(y)))
}

// Coverage is the fraction of observations inside [lower, upper].
func Coverage(y, lower, upper []float64) float64 {
	if len(y) == 0 {
		return math.NaN()
	}
	in := 0
	for i := range y {
		if y[i] >= lower[i] && y[i] <= upper[i] {
			in++
		}
	}
	return float64(in) / float64(len(y))
}
