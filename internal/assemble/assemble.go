// Package assemble turns the per-trial outputs of a simulation into
// empirical random variables, one per output position.
package assemble

import (
	"fmt"

	"github.com/san-kum/randify/internal/randvar"
)

// Collect validates that every trial produced the same output arity and
// per-position shape, then builds one empirical RandomVariable per
// position, each backed by exactly one sample per trial. The trial
// values are cloned so later mutation by the caller cannot alter the
// assembled records.
func Collect(trials [][]randvar.Value) ([]*randvar.RandomVariable, error) {
	if len(trials) == 0 {
		return nil, fmt.Errorf("assemble: no trials: %w", randvar.ErrEmptySamples)
	}

	arity := len(trials[0])
	for i, out := range trials {
		if len(out) != arity {
			return nil, fmt.Errorf("assemble: trial %d returned %d values, trial 0 returned %d: %w",
				i, len(out), arity, randvar.ErrShapeMismatch)
		}
		for j, v := range out {
			if len(v) != len(trials[0][j]) {
				return nil, fmt.Errorf("assemble: trial %d output %d has %d elements, trial 0 has %d: %w",
					i, j, len(v), len(trials[0][j]), randvar.ErrShapeMismatch)
			}
		}
	}

	vars := make([]*randvar.RandomVariable, arity)
	for j := 0; j < arity; j++ {
		samples := make([]randvar.Value, len(trials))
		for i := range trials {
			samples[i] = trials[i][j].Clone()
		}
		rv, err := randvar.NewEmpirical(samples)
		if err != nil {
			return nil, fmt.Errorf("assemble: output %d: %w", j, err)
		}
		vars[j] = rv
	}
	return vars, nil
}
