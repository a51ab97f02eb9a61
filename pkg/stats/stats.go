// Package stats computes descriptive statistics over a numeric vector,
// used by the Feature Loader to report per-column ingest summaries.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Indicators is a summary of one numeric column or distance vector.
type Indicators struct {
	Mean     float64 `json:"mean"`
	Stddev   float64 `json:"stddev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Describe summarises v. An empty v returns the zero Indicators.
func Describe(v []float64) Indicators {
	if len(v) == 0 {
		return Indicators{}
	}
	mean, variance := stat.MeanVariance(v, nil)
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return Indicators{
		Mean:     mean,
		Stddev:   stat.StdDev(v, nil),
		Variance: variance,
		Min:      lo,
		Max:      hi,
	}
}
