package interval

// Boxed is the type-erased counterpart to Interval[T]: the planner carries
// one Boxed per index column so it doesn't need to be generic over every
// column's element type. It composes unchanged with the typed form via Box
// and Unbox. The hot cursor loop should hoist the Comparator once per
// column rather than re-resolving it per row; Boxed itself holds no
// comparator so callers are forced to pass one explicitly at each call,
// same as the typed Interval.
type Boxed = Interval[any]

// Box converts a typed interval into its type-erased form.
func Box[T any](iv Interval[T]) Boxed {
	return Boxed{
		HasLower:       iv.HasLower,
		HasUpper:       iv.HasUpper,
		Lower:          iv.Lower,
		Upper:          iv.Upper,
		LowerExclusive: iv.LowerExclusive,
		UpperExclusive: iv.UpperExclusive,
		Empty:          iv.Empty,
	}
}

// Unbox converts a type-erased interval back to a typed one. It panics if a
// bound is present and not assignable to T, which indicates a bug in the
// caller wiring a column's comparator to the wrong element type.
func Unbox[T any](iv Boxed) Interval[T] {
	out := Interval[T]{
		HasLower:       iv.HasLower,
		HasUpper:       iv.HasUpper,
		LowerExclusive: iv.LowerExclusive,
		UpperExclusive: iv.UpperExclusive,
		Empty:          iv.Empty,
	}
	if iv.HasLower {
		out.Lower = iv.Lower.(T)
	}
	if iv.HasUpper {
		out.Upper = iv.Upper.(T)
	}
	return out
}

// BoxComparator lifts a typed Comparator into one operating on boxed
// values, for use with Boxed.Intersect/Contains.
func BoxComparator[T any](cmp Comparator[T]) Comparator[any] {
	return func(a, b any) int {
		return cmp(a.(T), b.(T))
	}
}
