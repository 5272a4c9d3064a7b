package interval

import "testing"

func intCmp(a, b int) int { return a - b }

func TestIntersectCommutative(t *testing.T) {
	cases := []struct {
		a, b Interval[int]
	}{
		{SinglePoint(4), LowerBounded(2, false)},
		{LowerBounded(1, true), UpperBounded(10, false)},
		{Universe[int](), SinglePoint(5)},
		{Interval[int]{Empty: true}, LowerBounded(1, false)},
	}
	for i, c := range cases {
		ab := c.a.Intersect(c.b, intCmp)
		ba := c.b.Intersect(c.a, intCmp)
		if ab != ba {
			t.Errorf("case %d: not commutative: %v vs %v", i, ab, ba)
		}
	}
}

func TestIntersectAssociative(t *testing.T) {
	a := LowerBounded(1, false)
	b := UpperBounded(10, true)
	c := SinglePoint(5)

	left := a.Intersect(b, intCmp).Intersect(c, intCmp)
	right := a.Intersect(b.Intersect(c, intCmp), intCmp)
	if left != right {
		t.Errorf("not associative: %v vs %v", left, right)
	}
}

func TestUniverseIsIdentity(t *testing.T) {
	a := LowerBounded(3, true).Intersect(UpperBounded(9, false), intCmp)
	got := a.Intersect(Universe[int](), intCmp)
	if got != a {
		t.Errorf("Universe() is not identity: got %v want %v", got, a)
	}
}

func TestEmptyIsAbsorbing(t *testing.T) {
	a := LowerBounded(3, true)
	got := a.Intersect(Interval[int]{Empty: true}, intCmp)
	if !got.Empty {
		t.Errorf("empty did not absorb: %v", got)
	}
}

func TestIntersectIdempotent(t *testing.T) {
	a := LowerBounded(3, true).Intersect(UpperBounded(9, false), intCmp)
	got := a.Intersect(a, intCmp)
	if got != a {
		t.Errorf("not idempotent: got %v want %v", got, a)
	}
}

func TestSinglePointIntersectEqual(t *testing.T) {
	got := SinglePoint(5).Intersect(SinglePoint(5), intCmp)
	if got.Empty || got.Lower != 5 || got.Upper != 5 {
		t.Errorf("expected [5,5], got %v", got)
	}
}

func TestSinglePointIntersectDifferent(t *testing.T) {
	got := SinglePoint(5).Intersect(SinglePoint(6), intCmp)
	if !got.Empty {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestCoincidentBoundaryWithExclusivityIsEmpty(t *testing.T) {
	// [5, 5] ∩ (5, +inf) must be empty.
	got := SinglePoint(5).Intersect(LowerBounded(5, true), intCmp)
	if !got.Empty {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestTieRuleOrsExclusivity(t *testing.T) {
	// [3, +inf) ∩ (3, +inf) -> exclusive tie on lower bound.
	got := LowerBounded(3, false).Intersect(LowerBounded(3, true), intCmp)
	if got.Empty || !got.LowerExclusive || got.Lower != 3 {
		t.Errorf("expected (3, +inf), got %v", got)
	}

	// (-inf, 7] ∩ (-inf, 7) -> exclusive tie on upper bound.
	got2 := UpperBounded(7, false).Intersect(UpperBounded(7, true), intCmp)
	if got2.Empty || !got2.UpperExclusive || got2.Upper != 7 {
		t.Errorf("expected (-inf, 7), got %v", got2)
	}
}

func TestContains(t *testing.T) {
	iv := LowerBounded(2, true).Intersect(UpperBounded(8, false), intCmp)
	for _, v := range []int{3, 4, 8} {
		if !iv.Contains(v, intCmp) {
			t.Errorf("expected %d to be contained in %v", v, iv)
		}
	}
	for _, v := range []int{2, 9, 0} {
		if iv.Contains(v, intCmp) {
			t.Errorf("expected %d NOT to be contained in %v", v, iv)
		}
	}
}

func TestBoxRoundTrip(t *testing.T) {
	iv := LowerBounded(2, true).Intersect(UpperBounded(8, false), intCmp)
	boxed := Box(iv)
	cmp := BoxComparator(intCmp)
	if boxed.Intersect(Box(SinglePoint(5)), cmp).Empty {
		t.Errorf("expected 5 to remain in boxed interval")
	}
	back := Unbox[int](boxed)
	if back != iv {
		t.Errorf("round trip mismatch: got %v want %v", back, iv)
	}
}
