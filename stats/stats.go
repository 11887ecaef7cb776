// Package stats summarizes experiment samples.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Summary describes a sample of measurements.
type Summary struct {
	N      int
	Mean   float64
	Stdev  float64
	Min    float64
	Max    float64
	StdErr float64
}

// Summarize returns the sample statistics of xs. Fewer than two samples have
// zero spread.
func Summarize(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if s.N == 0 {
		return s
	}
	s.Min, s.Max = xs[0], xs[0]
	for _, x := range xs[1:] {
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	if s.N == 1 {
		s.Mean = xs[0]
		return s
	}
	s.Mean, s.Stdev = stat.MeanStdDev(xs, nil)
	s.StdErr = stat.StdErr(s.Stdev, float64(s.N))
	return s
}

// Interval is a closed range of proportions in [0, 1].
type Interval struct {
	Low  float64
	High float64
}

// WinRateInterval returns the Wilson score interval for wins out of games at
// the given confidence (0 to 100 percent).
func WinRateInterval(wins, games int, confidence float64) Interval {
	if games <= 0 {
		return Interval{}
	}
	z := ZVal(confidence)
	n := float64(games)
	p := float64(wins) / n
	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	half := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denominator
	return Interval{
		Low:  math.Max(0, center-half),
		High: math.Min(1, center+half),
	}
}
