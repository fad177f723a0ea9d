package gpr

import (
	"errors"

	"bitbucket.org/dtolpin/gpcmp/kernel"
)

var (
	// ErrShape is returned for empty or misaligned inputs.
	ErrShape = kernel.ErrShape
	// ErrDomain is returned for non-finite inputs and invalid
	// regressor options.
	ErrDomain = kernel.ErrDomain
	// ErrNotFit is returned when the regressor has not been fit.
	ErrNotFit = errors.New("regressor is not fit")
	// ErrNumerical is returned when the training covariance
	// cannot be factorized even with jitter.
	ErrNumerical = errors.New("numerical instability")
)
