// Package data prepares series for the regressors: loading,
// feature scaling, target centering and a chronological split.
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Load parses the data from csv and returns inputs and outputs.
// Each record holds the features followed by the target.
func Load(rdr io.Reader) (
	x [][]float64,
	y []float64,
	err error,
) {
	csv := csv.NewReader(rdr)
	csv.Comment = '#'
	csv.TrimLeadingSpace = true
RECORDS:
	for {
		record, err := csv.Read()
		switch err {
		case nil:
			if len(record) < 2 {
				return x, y, fmt.Errorf("record %d: want features and target, got %d fields",
					len(x)+1, len(record))
			}
			xi := make([]float64, len(record)-1)
			i := 0
			for ; i != len(record)-1; i++ {
				xi[i], err = strconv.ParseFloat(record[i], 64)
				if err != nil {
					// data error
					return x, y, err
				}
			}
			yi, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				// data error
				return x, y, err
			}
			x = append(x, xi)
			y = append(y, yi)
		case io.EOF:
			break RECORDS
		default:
			// i/o error
			return x, y, err
		}
	}
	if len(x) == 0 {
		return x, y, errors.New("no records")
	}
	return x, y, nil
}

// Scale maps features to [0, 1] with the ranges it was built on.
type Scale struct {
	Min, Max []float64
}

// NewScale computes the per-feature ranges of x.
func NewScale(x [][]float64) *Scale {
	if len(x) == 0 {
		return &Scale{}
	}
	d := len(x[0])
	s := &Scale{Min: make([]float64, d), Max: make([]float64, d)}
	col := make([]float64, len(x))
	for j := 0; j != d; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		s.Min[j], s.Max[j] = floats.Min(col), floats.Max(col)
	}
	return s
}

// Apply returns scaled copies of x. Constant features map to 0.
func (s *Scale) Apply(x [][]float64) [][]float64 {
	z := make([][]float64, len(x))
	for i := range x {
		z[i] = make([]float64, len(x[i]))
		for j := range x[i] {
			if w := s.Max[j] - s.Min[j]; w > 0 {
				z[i][j] = (x[i][j] - s.Min[j]) / w
			}
		}
	}
	return z
}

// Normalize scales x to [0, 1] over its own ranges.
func Normalize(x [][]float64) [][]float64 {
	return NewScale(x).Apply(x)
}

// Center returns standardized copies of y, together with the mean
// and standard deviation to undo it. A constant y is only shifted.
func Center(y []float64) (z []float64, mean, std float64) {
	mean, std = stat.MeanStdDev(y, nil)
	if !(std > 0) {
		std = 1
	}
	z = make([]float64, len(y))
	for i := range y {
		z[i] = (y[i] - mean) / std
	}
	return z, mean, std
}

// Split partitions the series in order: the last testFraction of
// the records, rounded up, forms the test set.
func Split(x [][]float64, y []float64, testFraction float64) (
	xTrain [][]float64, yTrain []float64,
	xTest [][]float64, yTest []float64,
	err error,
) {
	if len(x) != len(y) {
		return nil, nil, nil, nil,
			fmt.Errorf("%d inputs, %d targets", len(x), len(y))
	}
	if !(testFraction > 0 && testFraction < 1) {
		return nil, nil, nil, nil,
			fmt.Errorf("test fraction %v is not in (0, 1)", testFraction)
	}
	nTest := int(math.Ceil(float64(len(x)) * testFraction))
	nTrain := len(x) - nTest
	if nTrain < 1 || nTest < 1 {
		return nil, nil, nil, nil,
			fmt.Errorf("cannot split %d records with test fraction %v",
				len(x), testFraction)
	}
	return x[:nTrain], y[:nTrain], x[nTrain:], y[nTrain:], nil
}
