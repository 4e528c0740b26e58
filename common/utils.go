package common

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v, lo or hi
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1 matching the sign of v.
func Sign[T constraints.Signed | constraints.Float](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Sin, Cos, Atan2 and Asin are float32 shorthands over the math package.

func Sin(v float32) float32 { return float32(math.Sin(float64(v))) }

func Cos(v float32) float32 { return float32(math.Cos(float64(v))) }

func Atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

// Asin clamps its input to [-1, 1] so float drift never yields NaN.
func Asin(v float32) float32 { return float32(math.Asin(float64(Clamp(v, -1, 1)))) }
