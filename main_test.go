package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"testing"

	"bitbucket.org/dtolpin/gpcmp/data"
	"bitbucket.org/dtolpin/gpcmp/gpr"
	"bitbucket.org/dtolpin/gpcmp/kernel"
)

const eps = 1e-9

var (
	xs = [][]float64{{0}, {1}, {2}, {3}, {4}}
	ys = []float64{0, 1, 0, 1, 0}
)

func TestReferenceMatchesRegressor(t *testing.T) {
	const noise = 0.5
	k, err := kernel.NewGaussian(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	test := [][]float64{{0.5}, {2.5}, {7}}

	r, err := gpr.New(k, gpr.WithNoise(noise))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Fit(xs, ys); err != nil {
		t.Fatal(err)
	}
	mean, cov, err := r.Predict(test)
	if err != nil {
		t.Fatal(err)
	}
	std := gpr.StdDev(cov)

	f, err := reference(k, noise, xs, ys, test)
	if err != nil {
		t.Fatal(err)
	}
	for i := range test {
		if math.Abs(f.mean[i]-mean[i]) > eps {
			t.Errorf("mean at %v: gogp %.8f, regressor %.8f", test[i], f.mean[i], mean[i])
		}
		if math.Abs(f.std[i]-std[i]) > eps {
			t.Errorf("std at %v: gogp %.8f, regressor %.8f", test[i], f.std[i], std[i])
		}
	}
}

func TestRescaleInvertsCenter(t *testing.T) {
	y := []float64{317.78, 319.11, 318.69, 317.66, 316.52}
	z, meany, stdy := data.Center(y)
	ones := []float64{1, 1, 1, 1, 1}
	f := rescale("k", z, ones, -1, meany, stdy)
	for i := range y {
		if math.Abs(f.mean[i]-y[i]) > eps {
			t.Errorf("%d: got %v, want %v", i, f.mean[i], y[i])
		}
		if math.Abs(f.std[i]-stdy) > eps {
			t.Errorf("%d: std got %v, want %v", i, f.std[i], stdy)
		}
	}
	if f.label != "k" || f.lml != -1 {
		t.Errorf("got label %q, lml %v", f.label, f.lml)
	}
}

func TestPrepareUsesTrainingStatistics(t *testing.T) {
	X := make([][]float64, 10)
	Y := make([]float64, 10)
	for i := range X {
		X[i] = []float64{1950 + float64(i)}
		Y[i] = float64(i)
	}
	// the tail is far off; it must not move the standardization
	Y[8], Y[9] = 1000, 2000

	s, err := prepare(X, Y, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.xTrain) != 8 || len(s.xTest) != 2 {
		t.Fatalf("got %d train, %d test", len(s.xTrain), len(s.xTest))
	}
	if s.meany != 3.5 {
		t.Errorf("mean: got %v, want 3.5", s.meany)
	}
	sum := 0.
	for _, y := range s.yTrain {
		sum += y
	}
	if math.Abs(sum) > eps {
		t.Errorf("training targets are not centered: sum %v", sum)
	}
	if s.yTest[0] != 1000 || s.yTest[1] != 2000 {
		t.Errorf("test targets: got %v", s.yTest)
	}
	if s.xRaw[0][0] != 1958 || math.Abs(s.xTest[1][0]-1) > eps {
		t.Errorf("test inputs: raw %v, scaled %v", s.xRaw, s.xTest)
	}

	if _, err := prepare(X, Y, 1.5); err == nil {
		t.Error("bad test fraction: expected an error")
	}
}

func TestWrite(t *testing.T) {
	f := forecast{
		label: "rq(l=0.1,v=1,a=1)",
		mean:  []float64{1, 2},
		std:   []float64{0.5, 0.25},
	}
	var buf bytes.Buffer
	write(&buf, []forecast{f}, []float64{1.5, 2}, [][]float64{{1962.5}, {1962.75}})

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header and 2 rows", len(records))
	}
	header := []string{"kernel", "y", "mean", "std", "lower", "upper", "x"}
	for j, want := range header {
		if records[0][j] != want {
			t.Errorf("header %d: got %q, want %q", j, records[0][j], want)
		}
	}
	row := records[1]
	if row[0] != f.label {
		t.Errorf("label: got %q", row[0])
	}
	for j, want := range []float64{1.5, 1, 0.5, 1 - Z*0.5, 1 + Z*0.5, 1962.5} {
		got, err := strconv.ParseFloat(row[j+1], 64)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("column %s: got %v, want %v", header[j+1], got, want)
		}
	}
}
