package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"bitbucket.org/dtolpin/gogp/gp"
	adkernel "bitbucket.org/dtolpin/gogp/kernel/ad"

	"bitbucket.org/dtolpin/gpcmp/config"
	"bitbucket.org/dtolpin/gpcmp/kernel"
)

var (
	KERNEL = config.Gaussian
	LSCALE = 5.
	VAR    = 1.
	ALPHA  = 1.
	PERIOD = 12.
	NOISE  = 0.01
	N      = 100
	SEED   = time.Now().UTC().UnixNano()
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Generate test data: a series sampled from a Gaussian
process prior, as CSV records 'x,y'. Invocation:
	%s  [OPTIONS] > SERIES
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&KERNEL, "kernel", KERNEL,
		fmt.Sprintf("kernel type: %s, %s, %s or %s",
			config.Gaussian, config.RBF,
			config.RationalQuadratic, config.ExpSineSquared))
	flag.Float64Var(&LSCALE, "l", LSCALE, "length scale")
	flag.Float64Var(&VAR, "v", VAR, "variance")
	flag.Float64Var(&ALPHA, "alpha", ALPHA, "rational quadratic alpha")
	flag.Float64Var(&PERIOD, "p", PERIOD, "period")
	flag.Float64Var(&NOISE, "noise", NOISE, "observation noise variance")
	flag.IntVar(&N, "n", N, "number of points")
	flag.Int64Var(&SEED, "seed", SEED, "random seed")
}

// sample draws y at each x from the process conditioned on
// the points drawn so far.
func sample(g *gp.GP, rng *rand.Rand, xs <-chan float64, xys chan<- [2]float64) {
	for x := range xs {
		X := [][]float64{{x}}
		Y, Sigma, err := g.Produce(X)
		if err != nil {
			panic(fmt.Errorf("produce: %v", err))
		}
		y := Y[0] + Sigma[0]*rng.NormFloat64()
		xys <- [...]float64{x, y}
		X = append(g.X, X...)
		Y = append(g.Y, y)
		if err := g.Absorb(X, Y); err != nil {
			panic(fmt.Errorf("absorb: %v", err))
		}
	}
	close(xys)
}

func main() {
	flag.Parse()

	k, err := config.KernelConfig{
		Type:        KERNEL,
		LengthScale: LSCALE,
		Variance:    VAR,
		Alpha:       ALPHA,
		Period:      PERIOD,
	}.Build()
	if err != nil {
		log.Fatal(err)
	}

	g := &gp.GP{
		NDim:  1,
		Simil: kernel.AsModel(k, 1),
		// gogp takes the noise standard deviation
		Noise: adkernel.ConstantNoise(math.Sqrt(NOISE)),
	}

	xs := make(chan float64, 1)
	xys := make(chan [2]float64, 1)
	go func() {
		for i := 0; i != N; i++ {
			xs <- float64(i)
		}
		close(xs)
	}()
	go sample(g, rand.New(rand.NewSource(SEED)), xs, xys)

	for xy := range xys {
		fmt.Printf("%f,%f\n", xy[0], xy[1])
	}
}
