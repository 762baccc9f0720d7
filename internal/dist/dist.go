// Package dist builds samplers over common univariate distributions.
//
// Every constructor takes a caller-owned rand.Source, compatible with
// gonum's stat/distuv. Seeding that source is the caller's business; the
// simulation engine never reads or resets random state.
package dist

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/randify/internal/randvar"
)

// Normal returns a sampler over N(mu, sigma^2).
func Normal(src rand.Source, mu, sigma float64) randvar.Sampler {
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	return fromRander(d)
}

// Uniform returns a sampler over U[min, max).
func Uniform(src rand.Source, min, max float64) randvar.Sampler {
	d := distuv.Uniform{Min: min, Max: max, Src: src}
	return fromRander(d)
}

// Exponential returns a sampler over Exp(rate).
func Exponential(src rand.Source, rate float64) randvar.Sampler {
	d := distuv.Exponential{Rate: rate, Src: src}
	return fromRander(d)
}

// LogNormal returns a sampler whose logarithm is N(mu, sigma^2).
func LogNormal(src rand.Source, mu, sigma float64) randvar.Sampler {
	d := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: src}
	return fromRander(d)
}

// Rander is the draw surface of gonum's distuv distributions.
type Rander interface {
	Rand() float64
}

// FromRander adapts any distuv-style scalar distribution to a Sampler.
func FromRander(r Rander) randvar.Sampler { return fromRander(r) }

func fromRander(r Rander) randvar.Sampler {
	return func() (randvar.Value, error) {
		return randvar.Scalar(r.Rand()), nil
	}
}
