// Package kernel provides stationary covariance functions for
// Gaussian process regression.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/viterin/vek"
)

var (
	// ErrDomain is returned for hyperparameters outside their domain.
	ErrDomain = errors.New("domain error")
	// ErrShape is returned when point sets do not agree in dimension.
	ErrShape = errors.New("shape mismatch")
)

// Kernel is a covariance function. Implementations are immutable
// and may be shared.
type Kernel interface {
	// Cov returns the covariance between xa and xb, which
	// must have the same length.
	Cov(xa, xb []float64) float64
	String() string
}

var (
	_ Kernel = (*Gaussian)(nil)
	_ Kernel = (*RBF)(nil)
	_ Kernel = (*RationalQuadratic)(nil)
	_ Kernel = (*ExpSineSquared)(nil)
)

// squared exponential, shared by Gaussian and RBF
type se struct {
	variance float64
	lscale   float64
}

func (k *se) Cov(xa, xb []float64) float64 {
	d := dist2(xa, xb) / (k.lscale * k.lscale)
	return k.variance * math.Exp(-d/2)
}

// Gaussian is the squared exponential kernel
//
//	variance * exp(-r^2 / (2 lscale^2)).
type Gaussian struct{ se }

func NewGaussian(lscale, variance float64) (*Gaussian, error) {
	if err := positive("gaussian", "length scale", lscale); err != nil {
		return nil, err
	}
	if err := positive("gaussian", "variance", variance); err != nil {
		return nil, err
	}
	return &Gaussian{se{variance: variance, lscale: lscale}}, nil
}

func (k *Gaussian) String() string {
	return fmt.Sprintf("gaussian(l=%g,v=%g)", k.lscale, k.variance)
}

// RBF computes the same function as Gaussian, under its
// own label.
type RBF struct{ se }

func NewRBF(lscale, variance float64) (*RBF, error) {
	if err := positive("rbf", "length scale", lscale); err != nil {
		return nil, err
	}
	if err := positive("rbf", "variance", variance); err != nil {
		return nil, err
	}
	return &RBF{se{variance: variance, lscale: lscale}}, nil
}

func (k *RBF) String() string {
	return fmt.Sprintf("rbf(l=%g,v=%g)", k.lscale, k.variance)
}

// RationalQuadratic is a scale mixture of squared exponentials,
//
//	variance * (1 + r^2 / (2 alpha lscale^2))^-alpha.
type RationalQuadratic struct {
	variance float64
	lscale   float64
	alpha    float64
}

func NewRationalQuadratic(lscale, variance, alpha float64) (*RationalQuadratic, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"length scale", lscale},
		{"variance", variance},
		{"alpha", alpha},
	} {
		if err := positive("rational quadratic", p.name, p.value); err != nil {
			return nil, err
		}
	}
	return &RationalQuadratic{
		variance: variance,
		lscale:   lscale,
		alpha:    alpha,
	}, nil
}

func (k *RationalQuadratic) Cov(xa, xb []float64) float64 {
	d := dist2(xa, xb) / (2 * k.alpha * k.lscale * k.lscale)
	return k.variance * math.Pow(1+d, -k.alpha)
}

func (k *RationalQuadratic) String() string {
	return fmt.Sprintf("rq(l=%g,v=%g,a=%g)", k.lscale, k.variance, k.alpha)
}

// ExpSineSquared is the periodic kernel
//
//	variance * exp(-2 sin^2(pi r / period) / lscale^2).
type ExpSineSquared struct {
	variance float64
	lscale   float64
	period   float64
}

func NewExpSineSquared(lscale, variance, period float64) (*ExpSineSquared, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"length scale", lscale},
		{"variance", variance},
		{"period", period},
	} {
		if err := positive("exp-sine-squared", p.name, p.value); err != nil {
			return nil, err
		}
	}
	return &ExpSineSquared{
		variance: variance,
		lscale:   lscale,
		period:   period,
	}, nil
}

func (k *ExpSineSquared) Cov(xa, xb []float64) float64 {
	s := math.Sin(math.Pi*math.Sqrt(dist2(xa, xb))/k.period) / k.lscale
	return k.variance * math.Exp(-2*s*s)
}

func (k *ExpSineSquared) String() string {
	return fmt.Sprintf("expsine(l=%g,v=%g,p=%g)", k.lscale, k.variance, k.period)
}

// dist2 is the squared Euclidean distance. Negating a difference
// is exact, so dist2(a, b) == dist2(b, a) bit for bit.
func dist2(xa, xb []float64) float64 {
	d := vek.Sub(xa, xb)
	return vek.Dot(d, d)
}

func positive(kernel, name string, value float64) error {
	if !(value > 0) || math.IsInf(value, 1) {
		return fmt.Errorf("%s: %s must be positive and finite, got %v: %w",
			kernel, name, value, ErrDomain)
	}
	return nil
}
