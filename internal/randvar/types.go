package randvar

import "math"

// Value is one concrete draw of a random quantity. A scalar is a
// one-element Value; vector quantities use longer slices. Every draw from
// the same variable must have the same length.
type Value []float64

// Scalar wraps a float64 in a one-element Value.
func Scalar(x float64) Value { return Value{x} }

func (v Value) Clone() Value {
	c := make(Value, len(v))
	copy(c, v)
	return c
}

func (v Value) IsScalar() bool { return len(v) == 1 }

func (v Value) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Value) Equal(other Value) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Sampler produces one independent draw per invocation. Distribution
// parameters are bound by closure; any randomness source it uses is owned
// by the caller, never by this package or the simulation engine.
type Sampler func() (Value, error)
