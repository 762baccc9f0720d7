package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/randify/internal/randvar"
)

// seqVar builds a generative variable over a deterministic scalar
// sequence. The constructor's probe draw consumes the first element.
func seqVar(t *testing.T, start float64) *randvar.RandomVariable {
	t.Helper()
	next := start - 1
	rv, err := randvar.New(func() (randvar.Value, error) {
		next++
		return randvar.Scalar(next), nil
	})
	if err != nil {
		t.Fatalf("seqVar: %v", err)
	}
	return rv
}

func normalVar(t *testing.T, mu, sigma float64, seed int64) *randvar.RandomVariable {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rv, err := randvar.New(func() (randvar.Value, error) {
		return randvar.Scalar(mu + sigma*rng.NormFloat64()), nil
	})
	if err != nil {
		t.Fatalf("normalVar: %v", err)
	}
	return rv
}

func identity(in []randvar.Value) ([]randvar.Value, error) {
	return []randvar.Value{in[0]}, nil
}

func TestCall_OutputSampleCount(t *testing.T) {
	for _, n := range []int{1, 10, 500} {
		w := Wrap(identity, Config{Trials: n})
		outs, err := w.Call(Random(seqVar(t, 0)))
		if err != nil {
			t.Fatalf("Call failed for n=%d: %v", n, err)
		}
		if len(outs) != 1 {
			t.Fatalf("got %d outputs, want 1", len(outs))
		}
		if outs[0].Len() != n {
			t.Errorf("n=%d: output holds %d samples", n, outs[0].Len())
		}
		if outs[0].Mode() != randvar.Empirical {
			t.Errorf("output mode = %v, want empirical", outs[0].Mode())
		}
	}
}

func TestCall_IdentityPreservesDraws(t *testing.T) {
	// The sequence sampler emits 10, 11, 12, ... after the probe, so the
	// identity output must record exactly those draws in trial order.
	w := Wrap(identity, Config{Trials: 5})
	outs, err := w.Call(Random(seqVar(t, 10)))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	samples, err := outs[0].SampleN(5)
	if err != nil {
		t.Fatalf("SampleN failed: %v", err)
	}
	for i, s := range samples {
		want := 11.0 + float64(i)
		if s[0] != want {
			t.Errorf("trial %d recorded %v, want %v", i, s[0], want)
		}
	}
}

func TestCall_AffineStatistics(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical tolerance test")
	}

	const (
		mu    = 2.0
		sigma = 0.5
		n     = 100000
	)
	f := func(in []randvar.Value) ([]randvar.Value, error) {
		return []randvar.Value{randvar.Scalar(2*in[0][0] + 1)}, nil
	}

	w := Wrap(f, Config{Trials: n})
	outs, err := w.Call(Random(normalVar(t, mu, sigma, 1)))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	mean, err := outs[0].Mean()
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	variance, err := outs[0].Variance()
	if err != nil {
		t.Fatalf("Variance failed: %v", err)
	}

	wantMean := 2*mu + 1
	wantVar := 4 * sigma * sigma
	if rel := math.Abs(mean[0]-wantMean) / wantMean; rel > 0.05 {
		t.Errorf("mean = %v, want %v within 5%%", mean[0], wantMean)
	}
	if rel := math.Abs(variance[0]-wantVar) / wantVar; rel > 0.05 {
		t.Errorf("variance = %v, want %v within 5%%", variance[0], wantVar)
	}
}

func TestCall_TupleOutputs(t *testing.T) {
	f := func(in []randvar.Value) ([]randvar.Value, error) {
		a, b := in[0][0], in[1][0]
		return []randvar.Value{randvar.Scalar(a + b), randvar.Scalar(a * b)}, nil
	}

	const n = 8
	w := Wrap(f, Config{Trials: n})
	outs, err := w.Call(Random(seqVar(t, 1)), Random(seqVar(t, 100)))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if len(outs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(outs))
	}

	sums, err := outs[0].SampleN(n)
	if err != nil {
		t.Fatalf("SampleN failed: %v", err)
	}
	products, err := outs[1].SampleN(n)
	if err != nil {
		t.Fatalf("SampleN failed: %v", err)
	}

	// Probe draws consume 1 and 100, so trial i pairs (2+i, 101+i).
	for i := 0; i < n; i++ {
		x1 := 2.0 + float64(i)
		x2 := 101.0 + float64(i)
		if sums[i][0] != x1+x2 {
			t.Errorf("trial %d sum = %v, want %v", i, sums[i][0], x1+x2)
		}
		if products[i][0] != x1*x2 {
			t.Errorf("trial %d product = %v, want %v", i, products[i][0], x1*x2)
		}
	}
}

func TestCall_TrialError(t *testing.T) {
	boom := errors.New("boom")
	f := func(in []randvar.Value) ([]randvar.Value, error) {
		if in[0][0] >= 3 {
			return nil, boom
		}
		return []randvar.Value{in[0]}, nil
	}

	w := Wrap(f, Config{Trials: 10})
	outs, err := w.Call(Random(seqVar(t, 0)))
	if outs != nil {
		t.Error("expected no outputs after a failed trial")
	}

	var trialErr *TrialError
	if !errors.As(err, &trialErr) {
		t.Fatalf("expected *TrialError, got %v", err)
	}
	// Probe consumes 0; trials draw 1, 2, 3, so trial index 2 fails.
	if trialErr.Trial != 2 {
		t.Errorf("failing trial = %d, want 2", trialErr.Trial)
	}
	if !errors.Is(err, boom) {
		t.Error("TrialError does not wrap the original error")
	}
}

func TestCall_ShapeMismatch(t *testing.T) {
	calls := 0
	tests := []struct {
		name string
		f    Func
	}{
		{
			"arity drift",
			func(in []randvar.Value) ([]randvar.Value, error) {
				calls++
				if calls%2 == 0 {
					return []randvar.Value{in[0], in[0]}, nil
				}
				return []randvar.Value{in[0]}, nil
			},
		},
		{
			"element drift",
			func(in []randvar.Value) ([]randvar.Value, error) {
				calls++
				if calls%2 == 0 {
					return []randvar.Value{{1, 2}}, nil
				}
				return []randvar.Value{{1}}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			w := Wrap(tt.f, Config{Trials: 4})
			if _, err := w.Call(Random(seqVar(t, 0))); !errors.Is(err, randvar.ErrShapeMismatch) {
				t.Errorf("expected ErrShapeMismatch, got %v", err)
			}
		})
	}
}

func TestCall_ZeroRandomArgs(t *testing.T) {
	f := func(in []randvar.Value) ([]randvar.Value, error) {
		return []randvar.Value{randvar.Scalar(in[0][0] + in[1][0])}, nil
	}

	w := Wrap(f, Config{Trials: 25})
	outs, err := w.Call(ConstScalar(2), ConstScalar(3))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if outs[0].Len() != 25 {
		t.Errorf("output holds %d samples, want 25", outs[0].Len())
	}

	samples, err := outs[0].SampleN(25)
	if err != nil {
		t.Fatalf("SampleN failed: %v", err)
	}
	for i, s := range samples {
		if s[0] != 5 {
			t.Errorf("trial %d = %v, want 5", i, s[0])
		}
	}
}

func TestCall_EmpiricalInputFixesTrials(t *testing.T) {
	record := []randvar.Value{randvar.Scalar(1), randvar.Scalar(2), randvar.Scalar(3)}
	emp, err := randvar.NewEmpirical(record)
	if err != nil {
		t.Fatalf("NewEmpirical failed: %v", err)
	}

	// Configured trial count loses to the empirical record size.
	w := Wrap(identity, Config{Trials: 100})
	outs, err := w.Call(Random(emp))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if outs[0].Len() != 3 {
		t.Fatalf("output holds %d samples, want 3", outs[0].Len())
	}

	samples, err := outs[0].SampleN(3)
	if err != nil {
		t.Fatalf("SampleN failed: %v", err)
	}
	for i := range record {
		if !samples[i].Equal(record[i]) {
			t.Errorf("trial %d = %v, want %v", i, samples[i], record[i])
		}
	}
}

func TestCall_EmpiricalInputsDisagree(t *testing.T) {
	a, err := randvar.NewEmpirical([]randvar.Value{randvar.Scalar(1), randvar.Scalar(2)})
	if err != nil {
		t.Fatalf("NewEmpirical failed: %v", err)
	}
	b, err := randvar.NewEmpirical([]randvar.Value{randvar.Scalar(1)})
	if err != nil {
		t.Fatalf("NewEmpirical failed: %v", err)
	}

	f := func(in []randvar.Value) ([]randvar.Value, error) {
		return []randvar.Value{in[0]}, nil
	}
	w := Wrap(f, DefaultConfig())
	if _, err := w.Call(Random(a), Random(b)); !errors.Is(err, randvar.ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestCall_InvalidTrials(t *testing.T) {
	for _, n := range []int{0, -5} {
		w := Wrap(identity, Config{Trials: n})
		if _, err := w.Call(Random(seqVar(t, 0))); err == nil {
			t.Errorf("expected error for trials=%d", n)
		}
	}
}

func TestCall_SameVariableDrawsIndependently(t *testing.T) {
	// Passing one variable to two parameters must draw two samples per
	// trial. With a sequence sampler the two slots see consecutive
	// values, so their difference is always -1; a shared draw would
	// yield 0.
	f := func(in []randvar.Value) ([]randvar.Value, error) {
		return []randvar.Value{randvar.Scalar(in[0][0] - in[1][0])}, nil
	}

	rv := seqVar(t, 0)
	w := Wrap(f, Config{Trials: 6})
	outs, err := w.Call(Random(rv), Random(rv))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	samples, err := outs[0].SampleN(6)
	if err != nil {
		t.Fatalf("SampleN failed: %v", err)
	}
	for i, s := range samples {
		if s[0] != -1 {
			t.Errorf("trial %d difference = %v, want -1 (independent draws)", i, s[0])
		}
	}
}

func TestTrialError_Format(t *testing.T) {
	err := &TrialError{Trial: 7, Err: fmt.Errorf("wrapped boom")}
	want := "engine: trial 7: wrapped boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDefaultConfig(t *testing.T) {
	if cfg := DefaultConfig(); cfg.Trials != DefaultTrials {
		t.Errorf("DefaultConfig trials = %d, want %d", cfg.Trials, DefaultTrials)
	}
}
