// Package interval implements a half-open/closed interval type over a
// totally ordered domain, and the intersection operation used to collapse
// many AND-ed comparison predicates on one column into a single bound.
package interval

import "fmt"

// Comparator reports the sign of a-b under some total order: negative if
// a < b, zero if a == b, positive if a > b.
type Comparator[T any] func(a, b T) int

// Interval describes a contiguous subset of a totally ordered domain T.
// The zero value is the universal interval (unbounded on both sides, not
// empty). Fields are meaningful only as documented: Lower/Upper matter
// only when the matching Has* flag is set, and nothing else matters once
// Empty is true.
type Interval[T any] struct {
	HasLower bool
	HasUpper bool
	Lower    T
	Upper    T

	LowerExclusive bool
	UpperExclusive bool

	Empty bool
}

// Universe returns the unbounded interval containing every value.
func Universe[T any]() Interval[T] {
	return Interval[T]{}
}

// SinglePoint returns the closed interval [v, v].
func SinglePoint[T any](v T) Interval[T] {
	return Interval[T]{
		HasLower: true,
		HasUpper: true,
		Lower:    v,
		Upper:    v,
	}
}

// LowerBounded returns (v, +inf) if exclusive, else [v, +inf).
func LowerBounded[T any](v T, exclusive bool) Interval[T] {
	return Interval[T]{
		HasLower:       true,
		Lower:          v,
		LowerExclusive: exclusive,
	}
}

// UpperBounded returns (-inf, v) if exclusive, else (-inf, v].
func UpperBounded[T any](v T, exclusive bool) Interval[T] {
	return Interval[T]{
		HasUpper:       true,
		Upper:          v,
		UpperExclusive: exclusive,
	}
}

// OneSidedBound dispatches to LowerBounded or UpperBounded.
func OneSidedBound[T any](v T, exclusive, isUpper bool) Interval[T] {
	if isUpper {
		return UpperBounded(v, exclusive)
	}
	return LowerBounded(v, exclusive)
}

// Intersect combines iv with other under cmp, following the tie rule: when
// two bounds on the same side compare equal, the result is exclusive on
// that side iff either operand was. Intersect is commutative, associative,
// and idempotent; Universe() is the identity and Empty is absorbing.
func (iv Interval[T]) Intersect(other Interval[T], cmp Comparator[T]) Interval[T] {
	if iv.Empty || other.Empty {
		return Interval[T]{Empty: true}
	}

	result := Interval[T]{}

	// Lower side: greater bound wins.
	switch {
	case iv.HasLower && !other.HasLower:
		result.HasLower, result.Lower, result.LowerExclusive = true, iv.Lower, iv.LowerExclusive
	case !iv.HasLower && other.HasLower:
		result.HasLower, result.Lower, result.LowerExclusive = true, other.Lower, other.LowerExclusive
	case iv.HasLower && other.HasLower:
		result.HasLower = true
		switch c := cmp(iv.Lower, other.Lower); {
		case c > 0:
			result.Lower, result.LowerExclusive = iv.Lower, iv.LowerExclusive
		case c < 0:
			result.Lower, result.LowerExclusive = other.Lower, other.LowerExclusive
		default:
			result.Lower = iv.Lower
			result.LowerExclusive = iv.LowerExclusive || other.LowerExclusive
		}
	}

	// Upper side: lesser bound wins.
	switch {
	case iv.HasUpper && !other.HasUpper:
		result.HasUpper, result.Upper, result.UpperExclusive = true, iv.Upper, iv.UpperExclusive
	case !iv.HasUpper && other.HasUpper:
		result.HasUpper, result.Upper, result.UpperExclusive = true, other.Upper, other.UpperExclusive
	case iv.HasUpper && other.HasUpper:
		result.HasUpper = true
		switch c := cmp(iv.Upper, other.Upper); {
		case c < 0:
			result.Upper, result.UpperExclusive = iv.Upper, iv.UpperExclusive
		case c > 0:
			result.Upper, result.UpperExclusive = other.Upper, other.UpperExclusive
		default:
			result.Upper = iv.Upper
			result.UpperExclusive = iv.UpperExclusive || other.UpperExclusive
		}
	}

	if result.HasLower && result.HasUpper {
		c := cmp(result.Lower, result.Upper)
		if c > 0 || (c == 0 && (result.LowerExclusive || result.UpperExclusive)) {
			return Interval[T]{Empty: true}
		}
	}

	return result
}

// IsEmpty reports whether iv is known-empty.
func (iv Interval[T]) IsEmpty() bool {
	return iv.Empty
}

// Contains reports whether v lies within iv under cmp.
func (iv Interval[T]) Contains(v T, cmp Comparator[T]) bool {
	if iv.Empty {
		return false
	}
	if iv.HasLower {
		c := cmp(v, iv.Lower)
		if c < 0 || (c == 0 && iv.LowerExclusive) {
			return false
		}
	}
	if iv.HasUpper {
		c := cmp(v, iv.Upper)
		if c > 0 || (c == 0 && iv.UpperExclusive) {
			return false
		}
	}
	return true
}

func (iv Interval[T]) String() string {
	if iv.Empty {
		return "∅"
	}
	lo := "-∞"
	loBrace := "("
	if iv.HasLower {
		lo = fmt.Sprintf("%v", iv.Lower)
		if !iv.LowerExclusive {
			loBrace = "["
		}
	}
	hi := "+∞"
	hiBrace := ")"
	if iv.HasUpper {
		hi = fmt.Sprintf("%v", iv.Upper)
		if !iv.UpperExclusive {
			hiBrace = "]"
		}
	}
	return fmt.Sprintf("%s%s, %s%s", loBrace, lo, hi, hiBrace)
}
