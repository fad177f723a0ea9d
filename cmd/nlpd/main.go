package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"bitbucket.org/dtolpin/gpcmp/score"
)

var (
	COMMA = ","
	SKIP  = 0
	NOISE = 0.
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Computes average negative log predictive density per kernel
from the forecasts written by gpcmp. Invocation:
	%s  [OPTIONS] < FORECASTS
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&COMMA, "comma", COMMA, "field separator")
	flag.IntVar(&SKIP, "s", SKIP, "initial records of each kernel to skip")
	flag.Float64Var(&NOISE, "noise", NOISE,
		"observation noise variance to add to the predicted variance")
}

type total struct {
	sum float64
	n   int
}

func main() {
	flag.Parse()

	rdr := csv.NewReader(os.Stdin)
	rdr.Comma = rune(COMMA[0])
	rdr.FieldsPerRecord = -1

	rdr.Read() // skip the header
	var order []string
	totals := map[string]*total{}
	seen := map[string]int{}
	for {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}

		label := record[0]
		seen[label]++
		if seen[label] <= SKIP {
			continue
		}

		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			log.Fatal(err)
		}
		mean, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			log.Fatal(err)
		}
		std, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			log.Fatal(err)
		}
		if NOISE > 0 {
			std = math.Sqrt(std*std + NOISE)
		}

		t, ok := totals[label]
		if !ok {
			t = &total{}
			totals[label] = t
			order = append(order, label)
		}
		t.sum += score.NLPD(y, mean, std)
		t.n++
	}
	for _, label := range order {
		t := totals[label]
		fmt.Printf("%s\t%f\n", label, t.sum/float64(t.n))
	}
}
