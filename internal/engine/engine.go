package engine

import (
	"fmt"

	"github.com/san-kum/randify/internal/assemble"
	"github.com/san-kum/randify/internal/randvar"
)

// DefaultTrials is the engine's fixed default trial count.
const DefaultTrials = 10000

// Config holds decoration-time options. The wrapped function's call
// signature is unchanged by decoration; everything trial-related lives
// here.
type Config struct {
	// Trials is the number of Monte Carlo trials per call. Empirical
	// inputs override it: their fixed record size dictates the trial
	// count, and all empirical inputs must agree on it.
	Trials int
}

func DefaultConfig() Config {
	return Config{Trials: DefaultTrials}
}

// Func is a wrapped callable: fully concrete inputs in, a fixed-arity
// list of outputs out. Output arity and per-position shape must not vary
// across invocations.
type Func func(in []randvar.Value) ([]randvar.Value, error)

// Arg tags one call argument as either a constant or a random variable.
type Arg struct {
	value randvar.Value
	rv    *randvar.RandomVariable
}

// Const wraps a constant value argument.
func Const(v randvar.Value) Arg { return Arg{value: v} }

// ConstScalar wraps a constant scalar argument.
func ConstScalar(x float64) Arg { return Arg{value: randvar.Scalar(x)} }

// Random wraps a random-variable argument. Each argument slot draws its
// own sample every trial, so passing the same variable to two parameters
// yields two independent draws per trial, not one shared draw.
func Random(rv *randvar.RandomVariable) Arg { return Arg{rv: rv} }

// IsRandom reports whether the argument is a random variable.
func (a Arg) IsRandom() bool { return a.rv != nil }

// TrialError reports a wrapped-function failure during one trial. The
// whole trial batch is discarded; no partial results survive.
type TrialError struct {
	Trial int
	Err   error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("engine: trial %d: %v", e.Trial, e.Err)
}

func (e *TrialError) Unwrap() error { return e.Err }

// Wrapped composes a target function with a trial configuration.
type Wrapped struct {
	fn  Func
	cfg Config
}

// Wrap decorates fn with Monte Carlo semantics under cfg.
func Wrap(fn Func, cfg Config) *Wrapped {
	return &Wrapped{fn: fn, cfg: cfg}
}

// Call runs the simulation and returns one empirical random variable per
// output position, each backed by exactly N samples.
//
// With zero random arguments the engine still runs N trials rather than
// short-circuiting to a single evaluation: the return shape stays
// uniform and functions with internal randomness remain correct.
func (w *Wrapped) Call(args ...Arg) ([]*randvar.RandomVariable, error) {
	trials, err := w.resolveTrials(args)
	if err != nil {
		return nil, err
	}

	// Empirical inputs are consumed in record order; generative inputs
	// draw fresh inside the trial loop.
	records := make(map[int][]randvar.Value)
	for i, a := range args {
		if a.IsRandom() && a.rv.Mode() == randvar.Empirical {
			rec, err := a.rv.SampleN(trials)
			if err != nil {
				return nil, err
			}
			records[i] = rec
		}
	}

	outputs := make([][]randvar.Value, trials)
	in := make([]randvar.Value, len(args))
	for t := 0; t < trials; t++ {
		for i, a := range args {
			switch {
			case !a.IsRandom():
				in[i] = a.value.Clone()
			case a.rv.Mode() == randvar.Empirical:
				in[i] = records[i][t].Clone()
			default:
				v, err := a.rv.Sample()
				if err != nil {
					return nil, &TrialError{Trial: t, Err: err}
				}
				in[i] = v
			}
		}

		out, err := w.fn(in)
		if err != nil {
			return nil, &TrialError{Trial: t, Err: err}
		}
		outputs[t] = out
	}

	return assemble.Collect(outputs)
}

// resolveTrials determines N for one call: the common record size of any
// empirical inputs, otherwise the configured trial count.
func (w *Wrapped) resolveTrials(args []Arg) (int, error) {
	trials := -1
	for _, a := range args {
		if !a.IsRandom() || a.rv.Mode() != randvar.Empirical {
			continue
		}
		n := a.rv.Len()
		if trials == -1 {
			trials = n
		} else if trials != n {
			return 0, fmt.Errorf("engine: empirical inputs hold %d and %d samples: %w",
				trials, n, randvar.ErrSizeMismatch)
		}
	}
	if trials == -1 {
		trials = w.cfg.Trials
	}
	if trials <= 0 {
		return 0, fmt.Errorf("engine: trials must be positive, got %d", trials)
	}
	return trials, nil
}
