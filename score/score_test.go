package score

import (
	"math"
	"testing"
)

const eps = 1e-10

func TestNLPD(t *testing.T) {
	for i, c := range []struct {
		y, mean, std float64
	}{
		{0, 0, 1},
		{1, 0, 1},
		{-2, 0.5, 0.3},
		{10, 10, 2},
	} {
		d := (c.y - c.mean) / c.std
		want := 0.5*d*d + math.Log(c.std) + 0.5*math.Log(2*math.Pi)
		if got := NLPD(c.y, c.mean, c.std); math.Abs(got-want) > eps {
			t.Errorf("%d: got %.8f, want %.8f", i, got, want)
		}
	}
}

func TestMeanNLPD(t *testing.T) {
	y := []float64{0, 1}
	mean := []float64{0, 0}
	std := []float64{1, 1}
	want := (NLPD(0, 0, 1) + NLPD(1, 0, 1)) / 2
	if got := MeanNLPD(y, mean, std); math.Abs(got-want) > eps {
		t.Errorf("got %v, want %v", got, want)
	}
	if !math.IsNaN(MeanNLPD(nil, nil, nil)) {
		t.Error("empty forecast should give NaN")
	}
}

func TestRMSE(t *testing.T) {
	if got := RMSE([]float64{1, 2, 3}, []float64{1, 4, 3}); math.Abs(got-math.Sqrt(4./3)) > eps {
		t.Errorf("got %v", got)
	}
}

func TestCoverage(t *testing.T) {
	y := []float64{0, 1, 2, 3}
	lower := []float64{-1, 1, 2.5, 0}
	upper := []float64{1, 2, 3, 2}
	if got := Coverage(y, lower, upper); got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
}
