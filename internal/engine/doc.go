// Package engine wraps a deterministic function so that calls mixing
// constants and random variables run a Monte Carlo simulation.
//
// [Wrap] composes the original callable into a [Wrapped] whose Call
// method accepts a tagged [Arg] per parameter. Each of the configured N
// trials draws a fresh independent sample for every random argument,
// invokes the function with fully concrete values, and the collected
// outputs become one empirical random variable per output position.
//
// The engine never seeds or touches any random state: reproducibility
// belongs to whoever owns the samplers behind the input variables.
package engine
