//go:build !ios && !android && (amd64 || arm64)

package avutil

import "fmt"

// Rational represents a rational number (fraction) as used by FFmpeg (AVRational).
type Rational struct {
	Num int32 // Numerator
	Den int32 // Denominator
}

// NewRational creates a new Rational with the given numerator and denominator.
func NewRational(num, den int32) Rational {
	return Rational{Num: num, Den: den}
}

// RationalFromRegister unpacks an AVRational returned by value. The struct is
// 8 bytes and comes back in a single integer register on amd64 and arm64, so
// bindings declare such functions as returning uint64.
func RationalFromRegister(v uint64) Rational {
	return Rational{Num: int32(uint32(v)), Den: int32(uint32(v >> 32))}
}

// Float64 converts the rational to a float64.
// Returns 0 if the denominator is 0.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Invert returns the inverted rational (den/num).
func (r Rational) Invert() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// IsZero returns true if the rational is zero.
func (r Rational) IsZero() bool {
	return r.Num == 0
}

// Cmp compares two rationals.
// Returns -1 if r < other, 0 if r == other, 1 if r > other.
func (r Rational) Cmp(other Rational) int {
	left := int64(r.Num) * int64(other.Den)
	right := int64(other.Num) * int64(r.Den)
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	}
	return 0
}

// Reduce reduces the rational to lowest terms.
func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return r
	}
	g := gcd(abs(r.Num), abs(r.Den))
	if g == 0 {
		return r
	}
	return Rational{Num: r.Num / g, Den: r.Den / g}
}

// String returns "num/den".
func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int32) int32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
