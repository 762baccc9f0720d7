// Package density estimates a continuous probability density function
// from a finite sample set using a Gaussian kernel with Silverman's
// rule-of-thumb bandwidth.
package density

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// MinSamples is the smallest sample set a kernel estimate accepts.
	// The unbiased variance and the bandwidth rule both need at least
	// two points.
	MinSamples = 2

	// GridSize is the number of support points in an estimate.
	GridSize = 256

	// padBandwidths extends the support grid beyond the observed sample
	// range so the tails of the estimate are not truncated at the data's
	// exact min/max.
	padBandwidths = 3.0
)

// Estimation errors.
var (
	// ErrInsufficientData indicates fewer than MinSamples samples.
	ErrInsufficientData = errors.New("density: not enough samples for a kernel estimate")

	// ErrDegenerate indicates a sample set with zero spread, for which
	// bandwidth selection is undefined.
	ErrDegenerate = errors.New("density: all samples are identical")
)

// Estimate is a discretized density over a finite support grid plus
// summary statistics. Mean, Variance, Skewness and Kurtosis are computed
// from the raw samples, not integrated from the grid, so they carry no
// grid-resolution error.
type Estimate struct {
	Support   []float64
	Density   []float64
	Bandwidth float64

	Mean     float64
	Variance float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// FromSamples builds a Gaussian-kernel density estimate over xs.
func FromSamples(xs []float64) (*Estimate, error) {
	n := len(xs)
	if n < MinSamples {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientData, n, MinSamples)
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("density: sample %d is not finite", i)
		}
	}

	mean := stat.Mean(xs, nil)
	variance := stat.Variance(xs, nil)
	if variance == 0 {
		return nil, fmt.Errorf("%w (n=%d, value=%g)", ErrDegenerate, n, xs[0])
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	h := silverman(sorted, math.Sqrt(variance))

	support := make([]float64, GridSize)
	floats.Span(support, sorted[0]-padBandwidths*h, sorted[n-1]+padBandwidths*h)

	dens := make([]float64, GridSize)
	norm := 1.0 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i, g := range support {
		sum := 0.0
		for _, x := range xs {
			z := (g - x) / h
			sum += math.Exp(-0.5 * z * z)
		}
		dens[i] = norm * sum
	}

	return &Estimate{
		Support:   support,
		Density:   dens,
		Bandwidth: h,
		Mean:      mean,
		Variance:  variance,
		Skewness:  stat.Skew(xs, nil),
		Kurtosis:  stat.ExKurtosis(xs, nil),
	}, nil
}

// silverman computes the rule-of-thumb bandwidth
// 0.9 * min(s, IQR/1.34) * n^(-1/5) over a sorted sample set.
func silverman(sorted []float64, stddev float64) float64 {
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) -
		stat.Quantile(0.25, stat.Empirical, sorted, nil)
	spread := stddev
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	return 0.9 * spread * math.Pow(float64(len(sorted)), -0.2)
}

// At evaluates the estimate at x by linear interpolation on the support
// grid. Points outside the grid evaluate to 0.
func (e *Estimate) At(x float64) float64 {
	if x < e.Support[0] || x > e.Support[len(e.Support)-1] {
		return 0
	}
	i := sort.SearchFloat64s(e.Support, x)
	if i == 0 {
		return e.Density[0]
	}
	x0, x1 := e.Support[i-1], e.Support[i]
	d0, d1 := e.Density[i-1], e.Density[i]
	t := (x - x0) / (x1 - x0)
	return d0 + t*(d1-d0)
}

// Integral returns the trapezoidal integral of the density over its
// support grid. For a well-formed estimate this is approximately 1.
func (e *Estimate) Integral() float64 {
	total := 0.0
	for i := 1; i < len(e.Support); i++ {
		total += 0.5 * (e.Density[i-1] + e.Density[i]) * (e.Support[i] - e.Support[i-1])
	}
	return total
}
