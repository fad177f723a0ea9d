// Package gpr implements Gaussian process regression with a zero
// prior mean and fixed kernel hyperparameters.
//
// Targets passed to Fit are modelled as draws around zero; callers
// with a non-zero level should center them first.
package gpr

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"bitbucket.org/dtolpin/gpcmp/kernel"
)

// State of a Regressor.
type State int

const (
	Unfit State = iota
	Fitted
)

func (s State) String() string {
	switch s {
	case Unfit:
		return "unfit"
	case Fitted:
		return "fitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Regressor is a Gaussian process regressor. Fit must not be
// called concurrently with any other method; Predict on a fitted
// regressor may be called from several goroutines.
type Regressor struct {
	kernel    kernel.Kernel
	noise     float64
	maxJitter int
	logger    *zap.Logger

	fit *fit // nil while unfit
}

// fit is replaced as a whole on every successful Fit.
type fit struct {
	x      [][]float64
	y      *mat.VecDense
	chol   mat.Cholesky
	l      *mat.TriDense
	alpha  *mat.VecDense
	jitter float64
}

// New returns an unfit regressor with covariance function k.
func New(k kernel.Kernel, opts ...Option) (*Regressor, error) {
	if k == nil {
		return nil, fmt.Errorf("nil kernel: %w", ErrDomain)
	}
	r := &Regressor{
		kernel:    k,
		noise:     DefaultNoise,
		maxJitter: DefaultMaxJitterAttempts,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Regressor) Kernel() kernel.Kernel { return r.kernel }
func (r *Regressor) Noise() float64        { return r.noise }

func (r *Regressor) State() State {
	if r.fit == nil {
		return Unfit
	}
	return Fitted
}

// Fit conditions the process on observations y at inputs X. On
// error the previous fit, if any, is kept.
func (r *Regressor) Fit(X [][]float64, y []float64) error {
	d, err := kernel.Dim(X)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	if len(y) != len(X) {
		return fmt.Errorf("fit: %d inputs, %d targets: %w",
			len(X), len(y), ErrShape)
	}
	if err := finite(X, y); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	n := len(X)
	r.logger.Debug("fitting",
		zap.Stringer("kernel", r.kernel),
		zap.Int("n", n),
		zap.Int("dim", d),
		zap.Float64("noise", r.noise))

	K, err := kernel.Sym(r.kernel, X)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	for i := 0; i != n; i++ {
		K.SetSym(i, i, K.At(i, i)+r.noise)
	}

	f := &fit{
		x: make([][]float64, n),
		y: mat.NewVecDense(n, append([]float64(nil), y...)),
	}
	for i, x := range X {
		f.x[i] = append([]float64(nil), x...)
	}
	if f.jitter, err = r.factorize(&f.chol, K); err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	f.l = &mat.TriDense{}
	f.chol.LTo(f.l)

	f.alpha = &mat.VecDense{}
	if err := f.chol.SolveVecTo(f.alpha, f.y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("fit: %v: %w", err, ErrNumerical)
		}
		r.logger.Warn("ill-conditioned training covariance",
			zap.Float64("condition", float64(cond)))
	}

	r.fit = f
	return nil
}

// factorize computes the Cholesky factorization of K, adding
// growing jitter to the diagonal when K is not numerically
// positive definite. It returns the jitter used.
func (r *Regressor) factorize(chol *mat.Cholesky, K *mat.SymDense) (float64, error) {
	if chol.Factorize(K) {
		return 0, nil
	}
	n, _ := K.Dims()
	jitter := jitterScale * mat.Trace(K) / float64(n)
	if !(jitter > 0) || math.IsInf(jitter, 1) {
		jitter = jitterScale
	}
	A := mat.NewSymDense(n, nil)
	for attempt := 1; attempt <= r.maxJitter; attempt++ {
		A.CopySym(K)
		for i := 0; i != n; i++ {
			A.SetSym(i, i, A.At(i, i)+jitter)
		}
		if chol.Factorize(A) {
			r.logger.Warn("added jitter to training covariance",
				zap.Int("attempt", attempt),
				zap.Float64("jitter", jitter))
			return jitter, nil
		}
		jitter *= jitterGrowth
	}
	return 0, fmt.Errorf("covariance is not positive definite after %d jitter attempts: %w",
		r.maxJitter, ErrNumerical)
}

// Predict returns the posterior mean and covariance at X. The
// covariance is symmetric with a non-negative diagonal.
func (r *Regressor) Predict(X [][]float64) (mean []float64, cov *mat.SymDense, err error) {
	f := r.fit
	if f == nil {
		return nil, nil, fmt.Errorf("predict: %w", ErrNotFit)
	}
	if _, err := kernel.Dim(f.x, X); err != nil {
		return nil, nil, fmt.Errorf("predict: %w", err)
	}
	if err := finite(X, nil); err != nil {
		return nil, nil, fmt.Errorf("predict: %w", err)
	}
	m := len(X)

	Ks, err := kernel.Matrix(r.kernel, f.x, X) // n×m
	if err != nil {
		return nil, nil, fmt.Errorf("predict: %w", err)
	}
	mean = make([]float64, m)
	mat.NewVecDense(m, mean).MulVec(Ks.T(), f.alpha)

	// v = L⁻¹ Ks, column by column
	v := mat.DenseCopyOf(Ks)
	blas64.Trsm(blas.Left, blas.NoTrans, 1, f.l.RawTriangular(), v.RawMatrix())

	Kss, err := kernel.Sym(r.kernel, X)
	if err != nil {
		return nil, nil, fmt.Errorf("predict: %w", err)
	}
	var vv mat.Dense
	vv.Mul(v.T(), v)

	cov = mat.NewSymDense(m, nil)
	for i := 0; i != m; i++ {
		for j := i; j != m; j++ {
			c := ((Kss.At(i, j) - vv.At(i, j)) + (Kss.At(j, i) - vv.At(j, i))) / 2
			if i == j && c < 0 {
				c = 0
			}
			cov.SetSym(i, j, c)
		}
	}
	return mean, cov, nil
}

// Len returns the number of training points.
func (r *Regressor) Len() int {
	if r.fit == nil {
		return 0
	}
	return len(r.fit.x)
}

// Jitter returns the diagonal jitter the last fit needed on top
// of the noise variance.
func (r *Regressor) Jitter() (float64, error) {
	if r.fit == nil {
		return 0, ErrNotFit
	}
	return r.fit.jitter, nil
}

// Factor returns a copy of the lower Cholesky factor of the
// training covariance.
func (r *Regressor) Factor() (*mat.TriDense, error) {
	if r.fit == nil {
		return nil, ErrNotFit
	}
	var l mat.TriDense
	r.fit.chol.LTo(&l)
	return &l, nil
}

// LogMarginalLikelihood returns log p(y | X) under the fitted
// hyperparameters.
func (r *Regressor) LogMarginalLikelihood() (float64, error) {
	f := r.fit
	if f == nil {
		return 0, ErrNotFit
	}
	n := len(f.x)
	ll := -0.5 * mat.Dot(f.y, f.alpha)
	for i := 0; i != n; i++ {
		ll -= math.Log(f.l.At(i, i))
	}
	ll -= 0.5 * float64(n) * math.Log(2*math.Pi)
	return ll, nil
}

func finite(X [][]float64, y []float64) error {
	for i, x := range X {
		for j, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("feature %d of point %d is %v: %w", j, i, v, ErrDomain)
			}
		}
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("target %d is %v: %w", i, v, ErrDomain)
		}
	}
	return nil
}
