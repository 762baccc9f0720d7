// Package randvar provides the random-variable primitive for Monte Carlo
// propagation.
//
// A [RandomVariable] is either generative (backed by a [Sampler] that
// produces a fresh independent draw on demand) or empirical (backed by a
// fixed record of previously observed samples, typically the output of a
// simulation run):
//
//   - [Value]: one concrete draw, a scalar or fixed-shape vector
//   - [Sampler]: caller-supplied draw procedure
//   - [RandomVariable]: sampling plus lazy density estimation
//
// # Example
//
//	src := rand.NewSource(1)
//	x, _ := randvar.New(dist.Normal(src, 0, 1))
//	v, _ := x.Sample()
//	ests, _ := x.EstimatePDF()
//
// # Thread Safety
//
// RandomVariable instances are NOT thread-safe. Samplers are invoked
// sequentially; callers that share a variable across goroutines must
// provide their own synchronization.
package randvar
