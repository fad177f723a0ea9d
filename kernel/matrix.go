package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix evaluates k pairwise over A and B. Element (i, j) of the
// p×q result is k(A[i], B[j]). When A and B are the same slice,
// only the upper triangle is evaluated and then mirrored.
func Matrix(k Kernel, A, B [][]float64) (*mat.Dense, error) {
	if _, err := Dim(A, B); err != nil {
		return nil, err
	}
	m := mat.NewDense(len(A), len(B), nil)
	if same(A, B) {
		for i := range A {
			for j := i; j != len(A); j++ {
				c := k.Cov(A[i], A[j])
				m.Set(i, j, c)
				m.Set(j, i, c)
			}
		}
		return m, nil
	}
	for i := range A {
		for j := range B {
			m.Set(i, j, k.Cov(A[i], B[j]))
		}
	}
	return m, nil
}

// Sym evaluates k over all pairs of A.
func Sym(k Kernel, A [][]float64) (*mat.SymDense, error) {
	if _, err := Dim(A); err != nil {
		return nil, err
	}
	m := mat.NewSymDense(len(A), nil)
	for i := range A {
		for j := i; j != len(A); j++ {
			m.SetSym(i, j, k.Cov(A[i], A[j]))
		}
	}
	return m, nil
}

// Dim returns the common dimension of all points in the sets.
// Every set must be non-empty.
func Dim(sets ...[][]float64) (int, error) {
	d := -1
	for _, set := range sets {
		if len(set) == 0 {
			return 0, fmt.Errorf("empty point set: %w", ErrShape)
		}
		for i, x := range set {
			switch {
			case d < 0:
				d = len(x)
				if d == 0 {
					return 0, fmt.Errorf("point %d has no features: %w",
						i, ErrShape)
				}
			case len(x) != d:
				return 0, fmt.Errorf("point %d has %d features, want %d: %w",
					i, len(x), d, ErrShape)
			}
		}
	}
	return d, nil
}

func same(A, B [][]float64) bool {
	return len(A) == len(B) && len(A) > 0 && &A[0] == &B[0]
}
