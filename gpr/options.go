package gpr

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	// DefaultNoise is the observation noise variance.
	DefaultNoise = 1e-6
	// DefaultMaxJitterAttempts bounds the factorization retries.
	DefaultMaxJitterAttempts = 5

	jitterScale  = 1e-9
	jitterGrowth = 10.
)

// Option configures a Regressor.
type Option func(*Regressor) error

// WithNoise sets the observation noise variance added to the
// diagonal of the training covariance. Zero is allowed.
func WithNoise(variance float64) Option {
	return func(r *Regressor) error {
		if !(variance >= 0) || math.IsInf(variance, 1) {
			return fmt.Errorf("noise variance %v: %w", variance, ErrDomain)
		}
		r.noise = variance
		return nil
	}
}

// WithMaxJitterAttempts sets how many times Fit retries the
// factorization with growing jitter. Zero disables retries.
func WithMaxJitterAttempts(n int) Option {
	return func(r *Regressor) error {
		if n < 0 {
			return fmt.Errorf("jitter attempts %d: %w", n, ErrDomain)
		}
		r.maxJitter = n
		return nil
	}
}

// WithLogger sets the logger; nil discards the output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Regressor) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		r.logger = logger
		return nil
	}
}
