package randvar

import (
	"fmt"

	"github.com/san-kum/randify/internal/density"
)

// Mode distinguishes how a RandomVariable was constructed.
type Mode int

const (
	// Generative variables are backed by a Sampler and produce a fresh
	// independent draw every time one is requested.
	Generative Mode = iota

	// Empirical variables are a fixed record of previously observed
	// samples, usually assembled from simulation trial outputs.
	Empirical
)

func (m Mode) String() string {
	switch m {
	case Generative:
		return "generative"
	case Empirical:
		return "empirical"
	default:
		return "unknown"
	}
}

// densityDraws is the internal sample budget a generative variable uses
// to estimate its own density. It is deliberately independent of any
// simulation's trial count.
const densityDraws = 4096

// RandomVariable represents an unknown scalar or vector quantity.
type RandomVariable struct {
	mode    Mode
	dim     int
	sampler Sampler
	samples []Value

	// est caches one density estimate per element. The empirical record
	// is immutable, so a computed cache never goes stale; estimation
	// failures are not cached and resurface on every access.
	est []*density.Estimate
}

// New constructs a generative variable. One probe draw is taken to fix
// the element shape; the probe is discarded and never reused.
func New(sampler Sampler) (*RandomVariable, error) {
	if sampler == nil {
		return nil, fmt.Errorf("randvar: nil sampler")
	}
	probe, err := sampler()
	if err != nil {
		return nil, fmt.Errorf("randvar: probe draw: %w", err)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("randvar: probe draw is empty: %w", ErrShapeMismatch)
	}
	if !probe.IsValid() {
		return nil, fmt.Errorf("randvar: probe draw: %w", ErrInvalidSample)
	}
	return &RandomVariable{mode: Generative, dim: len(probe), sampler: sampler}, nil
}

// NewEmpirical constructs an empirical variable from an already-collected
// sample record. The record must be non-empty and shape-consistent; it is
// fixed for the lifetime of the variable.
func NewEmpirical(samples []Value) (*RandomVariable, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySamples
	}
	dim := len(samples[0])
	if dim == 0 {
		return nil, fmt.Errorf("randvar: empty sample: %w", ErrShapeMismatch)
	}
	for i, s := range samples {
		if len(s) != dim {
			return nil, fmt.Errorf("randvar: sample %d has %d elements, want %d: %w",
				i, len(s), dim, ErrShapeMismatch)
		}
	}
	return &RandomVariable{mode: Empirical, dim: dim, samples: samples}, nil
}

// Mode reports the construction mode.
func (rv *RandomVariable) Mode() Mode { return rv.mode }

// Dim reports the number of elements per draw.
func (rv *RandomVariable) Dim() int { return rv.dim }

// Len reports the size of the empirical record, or 0 for generative
// variables.
func (rv *RandomVariable) Len() int { return len(rv.samples) }

// Sample draws one fresh value. Empirical variables are not resamplable:
// they are a fixed record of prior outcomes, and drawing from the record
// would silently reinterpret it as a new generative distribution.
func (rv *RandomVariable) Sample() (Value, error) {
	if rv.mode != Generative {
		return nil, fmt.Errorf("randvar: Sample on %s variable: %w", rv.mode, ErrMode)
	}
	v, err := rv.sampler()
	if err != nil {
		return nil, err
	}
	if len(v) != rv.dim {
		return nil, fmt.Errorf("randvar: draw has %d elements, want %d: %w",
			len(v), rv.dim, ErrShapeMismatch)
	}
	return v, nil
}

// SampleN returns n samples. In generative mode these are n fresh
// independent draws; in empirical mode the stored record is returned and
// n must equal its size.
func (rv *RandomVariable) SampleN(n int) ([]Value, error) {
	if n <= 0 {
		return nil, fmt.Errorf("randvar: sample count must be positive, got %d", n)
	}
	if rv.mode == Empirical {
		if n != len(rv.samples) {
			return nil, fmt.Errorf("randvar: requested %d samples, record holds %d: %w",
				n, len(rv.samples), ErrSizeMismatch)
		}
		return rv.samples, nil
	}
	out := make([]Value, n)
	for i := range out {
		v, err := rv.Sample()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// EstimatePDF returns one density estimate per element, computing and
// caching them on first access. Generative variables draw a fixed
// internal budget of samples for the estimate; empirical variables use
// their record. A failed estimation is not cached.
func (rv *RandomVariable) EstimatePDF() ([]*density.Estimate, error) {
	if rv.est != nil {
		return rv.est, nil
	}

	samples := rv.samples
	if rv.mode == Generative {
		var err error
		samples, err = rv.SampleN(densityDraws)
		if err != nil {
			return nil, err
		}
	}

	est := make([]*density.Estimate, rv.dim)
	series := make([]float64, len(samples))
	for k := 0; k < rv.dim; k++ {
		for i, s := range samples {
			series[i] = s[k]
		}
		e, err := density.FromSamples(series)
		if err != nil {
			return nil, fmt.Errorf("randvar: element %d: %w", k, err)
		}
		est[k] = e
	}
	rv.est = est
	return est, nil
}

// Mean returns the per-element sample mean, estimating the density first
// if it is not cached yet.
func (rv *RandomVariable) Mean() (Value, error) {
	return rv.moment(func(e *density.Estimate) float64 { return e.Mean })
}

// Variance returns the per-element unbiased sample variance.
func (rv *RandomVariable) Variance() (Value, error) {
	return rv.moment(func(e *density.Estimate) float64 { return e.Variance })
}

// Skewness returns the per-element sample skewness.
func (rv *RandomVariable) Skewness() (Value, error) {
	return rv.moment(func(e *density.Estimate) float64 { return e.Skewness })
}

// Kurtosis returns the per-element excess kurtosis.
func (rv *RandomVariable) Kurtosis() (Value, error) {
	return rv.moment(func(e *density.Estimate) float64 { return e.Kurtosis })
}

func (rv *RandomVariable) moment(get func(*density.Estimate) float64) (Value, error) {
	ests, err := rv.EstimatePDF()
	if err != nil {
		return nil, err
	}
	out := make(Value, len(ests))
	for i, e := range ests {
		out[i] = get(e)
	}
	return out, nil
}

func (rv *RandomVariable) String() string {
	if rv.mode == Empirical {
		return fmt.Sprintf("<RandomVariable dim=%d empirical n=%d>", rv.dim, len(rv.samples))
	}
	return fmt.Sprintf("<RandomVariable dim=%d generative>", rv.dim)
}
