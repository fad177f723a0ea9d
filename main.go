package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"bitbucket.org/dtolpin/gogp/gp"
	adkernel "bitbucket.org/dtolpin/gogp/kernel/ad"
	"go.uber.org/zap"

	"bitbucket.org/dtolpin/gpcmp/config"
	"bitbucket.org/dtolpin/gpcmp/data"
	"bitbucket.org/dtolpin/gpcmp/gpr"
	"bitbucket.org/dtolpin/gpcmp/kernel"
	"bitbucket.org/dtolpin/gpcmp/score"
)

var (
	CONFIG    = ""
	VERBOSE   = false
	REFERENCE = false
	Z         = 2.
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Compares Gaussian process kernels on a series. Invocation:
  %s [OPTIONS] < INPUT > OUTPUT
or
  %s [OPTIONS] selfcheck
INPUT is CSV with the features followed by the target in each
record. The tail of the series is held out and forecast by every
configured kernel; OUTPUT is CSV with one row per kernel and
held-out point. In 'selfcheck' mode, the data hard-coded into the
program is used.
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&CONFIG, "config", CONFIG, "YAML experiment config")
	flag.BoolVar(&VERBOSE, "v", VERBOSE, "log regressor internals")
	flag.BoolVar(&REFERENCE, "reference", REFERENCE,
		"also forecast with gogp using the first kernel")
	flag.Float64Var(&Z, "z", Z, "band half-width in standard deviations")
}

// forecast holds the predictions of one kernel, in the
// original scale of the targets.
type forecast struct {
	label string
	mean  []float64
	std   []float64
	lml   float64
}

func main() {
	var input io.Reader = os.Stdin
	output := os.Stdout

	flag.Parse()
	switch {
	case flag.NArg() == 0:
	case flag.NArg() == 1 && flag.Arg(0) == "selfcheck":
		input = strings.NewReader(selfCheckData)
	default:
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if CONFIG != "" {
		var err error
		if cfg, err = config.Load(CONFIG); err != nil {
			log.Fatal(err)
		}
	}
	kernels, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	logger := zap.NewNop()
	if VERBOSE {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()
	}

	fmt.Fprint(os.Stderr, "loading...")
	X, Y, err := data.Load(input)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, "done")

	s, err := prepare(X, Y, cfg.TestFraction)
	if err != nil {
		log.Fatal(err)
	}
	xTrain, yTrain, xTest := s.xTrain, s.yTrain, s.xTest

	fmt.Fprintln(os.Stderr, "forecasting...")
	var forecasts []forecast
	for _, k := range kernels {
		r, err := gpr.New(k,
			gpr.WithNoise(cfg.Noise),
			gpr.WithLogger(logger.Named(k.String())))
		if err != nil {
			log.Fatal(err)
		}
		if err := r.Fit(xTrain, yTrain); err != nil {
			log.Fatalf("%v: %v", k, err)
		}
		mean, cov, err := r.Predict(xTest)
		if err != nil {
			log.Fatalf("%v: %v", k, err)
		}
		lml, err := r.LogMarginalLikelihood()
		if err != nil {
			log.Fatalf("%v: %v", k, err)
		}
		forecasts = append(forecasts,
			rescale(k.String(), mean, gpr.StdDev(cov), lml, s.meany, s.stdy))
	}

	if REFERENCE {
		f, err := reference(kernels[0], cfg.Noise, xTrain, yTrain, xTest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to forecast with gogp: %v\n", err)
		} else {
			forecasts = append(forecasts,
				rescale(f.label, f.mean, f.std, f.lml, s.meany, s.stdy))
		}
	}

	write(output, forecasts, s.yTest, s.xRaw)
	for _, f := range forecasts {
		lower, upper := gpr.Band(f.mean, f.std, Z)
		fmt.Fprintf(os.Stderr,
			"%s: lml=%.4f nlpd=%.4f rmse=%.4f coverage=%.2f\n",
			f.label, f.lml,
			score.MeanNLPD(s.yTest, f.mean, f.std),
			score.RMSE(s.yTest, f.mean),
			score.Coverage(s.yTest, lower, upper))
	}
	fmt.Fprintln(os.Stderr, "done")
}

// split is the series prepared for the regressors: inputs scaled
// to [0, 1], training targets standardized with their own mean and
// standard deviation. Test targets stay in the original scale.
type split struct {
	xTrain, xTest [][]float64
	yTrain, yTest []float64
	xRaw          [][]float64 // unscaled test inputs
	meany, stdy   float64
}

func prepare(X [][]float64, Y []float64, testFraction float64) (split, error) {
	Xn := data.Normalize(X)
	xTrain, yTrain, xTest, yTest, err := data.Split(Xn, Y, testFraction)
	if err != nil {
		return split{}, err
	}
	// The regressors assume a zero prior mean; the held-out tail
	// does not contribute to the standardization.
	yc, meany, stdy := data.Center(yTrain)
	return split{
		xTrain: xTrain,
		xTest:  xTest,
		yTrain: yc,
		yTest:  yTest,
		xRaw:   X[len(xTrain):],
		meany:  meany,
		stdy:   stdy,
	}, nil
}

// write outputs one CSV row per forecast and test point:
// kernel,y,mean,std,lower,upper followed by the raw features.
func write(w io.Writer, forecasts []forecast, yTest []float64, xTest [][]float64) {
	fmt.Fprintln(w, "kernel,y,mean,std,lower,upper,x")
	for _, f := range forecasts {
		lower, upper := gpr.Band(f.mean, f.std, Z)
		for i := range f.mean {
			fmt.Fprintf(w, "%s,%f,%f,%f,%f,%f",
				quote(f.label), yTest[i], f.mean[i], f.std[i], lower[i], upper[i])
			for _, x := range xTest[i] {
				fmt.Fprintf(w, ",%f", x)
			}
			fmt.Fprintln(w)
		}
	}
}

// rescale maps standardized predictions back to the scale of
// the targets.
func rescale(label string, mean, std []float64, lml, meany, stdy float64) forecast {
	f := forecast{
		label: label,
		mean:  make([]float64, len(mean)),
		std:   make([]float64, len(std)),
		lml:   lml,
	}
	for i := range mean {
		f.mean[i] = mean[i]*stdy + meany
		f.std[i] = std[i] * stdy
	}
	return f
}

// reference forecasts with the gogp implementation, as a
// cross-check of the regressor. noise is a variance; gogp's
// constant noise is a standard deviation. gogp reports the
// marginal likelihood through Observe, which is not used here.
func reference(
	k kernel.Kernel,
	noise float64,
	xTrain [][]float64, yTrain []float64,
	xTest [][]float64,
) (forecast, error) {
	ndim := len(xTrain[0])
	g := &gp.GP{
		NDim:  ndim,
		Simil: kernel.AsModel(k, ndim),
		Noise: adkernel.ConstantNoise(math.Sqrt(noise)),
	}
	if err := g.Absorb(xTrain, yTrain); err != nil {
		return forecast{}, err
	}
	mu, sigma, err := g.Produce(xTest)
	if err != nil {
		return forecast{}, err
	}
	return forecast{
		label: "gogp " + k.String(),
		mean:  mu,
		std:   sigma,
		lml:   math.NaN(),
	}, nil
}

// quote protects the commas in kernel labels.
func quote(label string) string {
	return `"` + label + `"`
}

var selfCheckData = `1958.1667,317.78
1958.2500,319.11
1958.3333,318.69
1958.4167,317.66
1958.5000,316.52
1958.5833,316.02
1958.6667,315.67
1958.7500,314.51
1958.8333,313.66
1958.9167,313.23
1959.0000,314.41
1959.0833,316.57
1959.1667,318.33
1959.2500,320.09
1959.3333,319.78
1959.4167,318.77
1959.5000,317.23
1959.5833,316.54
1959.6667,316.07
1959.7500,315.19
1959.8333,314.38
1959.9167,314.06
1960.0000,315.34
1960.0833,317.26
1960.1667,319.72
1960.2500,320.88
1960.3333,320.38
1960.4167,319.97
1960.5000,318.70
1960.5833,318.17
1960.6667,317.04
1960.7500,316.02
1960.8333,315.11
1960.9167,314.94
1961.0000,316.27
1961.0833,318.39
1961.1667,320.43
1961.2500,321.44
1961.3333,321.32
1961.4167,320.75
1961.5000,319.26
1961.5833,318.84
1961.6667,318.20
1961.7500,316.73
1961.8333,316.11
1961.9167,316.20
1962.0000,316.50
1962.0833,319.14
1962.1667,321.42
1962.2500,322.37
1962.3333,322.47
1962.4167,321.33
1962.5000,319.99
1962.5833,319.88
1962.6667,319.16
1962.7500,318.24
1962.8333,317.36
1962.9167,316.86
1963.0000,317.94
1963.0833,319.80
`
