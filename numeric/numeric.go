// Package numeric provides the floating-point routines behind texcalc's
// functions and exponentiation. Every function is pure.
package numeric

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/zephyrtronium/bigfloat"
)

// Prec is the precision in bits of the intermediate results of Pow.
const Prec = 256

// MaxPlaces is the largest number of decimal places Round accepts.
const MaxPlaces = 8

// decimalPrec is enough significant digits to hold any float64 quantized to
// MaxPlaces places.
const decimalPrec = 400

// Root returns the real n-th root of x. The 0-th root of anything is 1. The
// second result is false if x is negative and n is even or not an integer,
// since then there is no real root.
func Root(x, n float64) (float64, bool) {
	switch {
	case n == 0:
		return 1, true
	case n == 2:
		if x < 0 {
			return 0, false
		}
		return math.Sqrt(x), true
	case n == 3:
		return math.Cbrt(x), true
	case x < 0:
		if n != math.Trunc(n) || math.Mod(n, 2) == 0 {
			return 0, false
		}
		return -math.Pow(-x, 1/n), true
	}
	return math.Pow(x, 1/n), true
}

// Round rounds x to the given number of decimal places, with halves rounded
// away from zero. Infinities and NaN are returned unchanged.
func Round(x float64, places int) (float64, error) {
	if places < 0 || places > MaxPlaces {
		return 0, fmt.Errorf("numeric: cannot round to %d places", places)
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x, nil
	}
	var d apd.Decimal
	if _, err := d.SetFloat64(x); err != nil {
		return 0, fmt.Errorf("numeric: converting %g: %w", x, err)
	}
	ctx := apd.BaseContext.WithPrecision(decimalPrec)
	ctx.Rounding = apd.RoundHalfUp
	if _, err := ctx.Quantize(&d, &d, -int32(places)); err != nil {
		return 0, fmt.Errorf("numeric: rounding %g: %w", x, err)
	}
	return d.Float64()
}

// PowInt raises x to an integer power by repeated squaring.
func PowInt(x float64, n int64) float64 {
	if n < 0 {
		if n == math.MinInt64 {
			return 1 / (PowInt(x, math.MaxInt64) * x)
		}
		return 1 / PowInt(x, -n)
	}
	r := 1.0
	for n > 0 {
		if n&1 == 1 {
			r *= x
		}
		n >>= 1
		if n > 0 {
			x *= x
		}
	}
	return r
}

// Pow raises x to the power y, computing with Prec bits before rounding to
// float64. Integer powers are computed exactly up to that rounding. A negative
// x with a fractional y gives NaN.
func Pow(x, y float64) float64 {
	switch {
	case math.IsNaN(x), math.IsNaN(y), math.IsInf(x, 0), math.IsInf(y, 0), x == 0:
		return math.Pow(x, y)
	case y == math.Trunc(y) && math.Abs(y) <= 1<<20:
		return bigPowInt(x, int64(y))
	case x < 0 && y == math.Trunc(y):
		r := Pow(-x, y)
		if math.Mod(y, 2) != 0 {
			r = -r
		}
		return r
	case x < 0:
		return math.NaN()
	}
	bx := new(big.Float).SetPrec(Prec).SetFloat64(x)
	by := new(big.Float).SetPrec(Prec).SetFloat64(y)
	z := new(big.Float).SetPrec(Prec)
	bigfloat.Pow(z, bx, by)
	f, _ := z.Float64()
	return f
}

// bigPowInt computes x^n with big.Float. x must be finite and nonzero.
func bigPowInt(x float64, n int64) float64 {
	neg := n < 0
	if neg {
		n = -n
	}
	b := new(big.Float).SetPrec(Prec).SetFloat64(x)
	r := new(big.Float).SetPrec(Prec).SetInt64(1)
	for n > 0 {
		if n&1 == 1 {
			r.Mul(r, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		r.Quo(new(big.Float).SetPrec(Prec).SetInt64(1), r)
	}
	f, _ := r.Float64()
	return f
}
