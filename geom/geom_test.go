package geom

import (
	"math"
	"testing"
)

func mustBox(t *testing.T, a, b Point) Box {
	t.Helper()
	box, err := NewBox(a, b)
	if err != nil {
		t.Fatalf("NewBox(%v, %v): unexpected error %v", a, b, err)
	}
	return box
}

func TestNewBoxNormalizes(t *testing.T) {
	cases := []struct {
		a, b           Point
		wantLo, wantHi Point
	}{
		{Point{0, 0}, Point{1, 1}, Point{0, 0}, Point{1, 1}},
		{Point{1, 1}, Point{0, 0}, Point{0, 0}, Point{1, 1}},
		{Point{1, 0}, Point{0, 1}, Point{0, 0}, Point{1, 1}},
		{Point{5, 5}, Point{5, 5}, Point{5, 5}, Point{5, 5}},
	}
	for _, c := range cases {
		box := mustBox(t, c.a, c.b)
		if box.Lo != c.wantLo || box.Hi != c.wantHi {
			t.Log("ERROR: NewBox(", c.a, c.b, ") = ", box, " want lo=", c.wantLo, " hi=", c.wantHi)
			t.Fail()
		}
	}
}

func TestNewBoxRejectsNaNAndInf(t *testing.T) {
	bad := []Point{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	}
	for _, p := range bad {
		if _, err := NewBox(p, Point{0, 0}); err != ErrInvalidCoordinate {
			t.Log("ERROR: NewBox with", p, "should have failed with ErrInvalidCoordinate, got", err)
			t.Fail()
		}
	}
}

func TestArea(t *testing.T) {
	cases := []struct {
		box      Box
		expected float64
	}{
		{mustBox(t, Point{0, 0}, Point{1, 1}), 1.0},
		{mustBox(t, Point{0, 0}, Point{2, 3}), 6.0},
		{mustBox(t, Point{5, 5}, Point{5, 5}), 0.0},
	}
	for _, c := range cases {
		if a := c.box.Area(); a != c.expected {
			t.Log("ERROR: Area() =", a, "want", c.expected)
			t.Fail()
		}
	}
}

// Touch-but-not-cross: §8 scenario 6.
func TestOverlapClosedIntervals(t *testing.T) {
	a := mustBox(t, Point{0, 0}, Point{1, 1})
	b := mustBox(t, Point{1, 1}, Point{2, 2})
	if !a.Overlap(b) {
		t.Log("ERROR: touching boxes should overlap (closed intervals)")
		t.Fail()
	}
	c := mustBox(t, Point{1.0001, 1.0001}, Point{2, 2})
	if a.Overlap(c) {
		t.Log("ERROR: disjoint boxes should not overlap")
		t.Fail()
	}
}

func TestOverlapPointInBox(t *testing.T) {
	point := mustBox(t, Point{5, 5}, Point{5, 5})
	box := mustBox(t, Point{0, 0}, Point{10, 10})
	if !point.Overlap(box) {
		t.Log("ERROR: a zero-area point box inside another box should overlap it")
		t.Fail()
	}
}

func TestUnion(t *testing.T) {
	a := mustBox(t, Point{0, 0}, Point{1, 1})
	b := mustBox(t, Point{2, 2}, Point{3, 3})
	u := a.Union(b)
	want := mustBox(t, Point{0, 0}, Point{3, 3})
	if u != want {
		t.Log("ERROR: Union =", u, "want", want)
		t.Fail()
	}
	// Union with a fully contained box should return the outer box unchanged.
	inner := mustBox(t, Point{0.5, 0.5}, Point{0.6, 0.6})
	if got := want.Union(inner); got != want {
		t.Log("ERROR: Union with a contained box changed the box:", got)
		t.Fail()
	}
}

func TestEnlargementIsNonNegative(t *testing.T) {
	a := mustBox(t, Point{0, 0}, Point{10, 10})
	b := mustBox(t, Point{-5, -5}, Point{5, 5})
	if e := a.Enlargement(b); e < 0 {
		t.Log("ERROR: Enlargement must be non-negative, got", e)
		t.Fail()
	}
	// Enlarging by a contained box costs nothing.
	inner := mustBox(t, Point{1, 1}, Point{2, 2})
	if e := a.Enlargement(inner); e != 0 {
		t.Log("ERROR: Enlargement by a contained box should be 0, got", e)
		t.Fail()
	}
}

func TestOverlapArea(t *testing.T) {
	a := mustBox(t, Point{0, 0}, Point{2, 2})
	b := mustBox(t, Point{1, 1}, Point{3, 3})
	if got := a.OverlapArea(b); got != 1.0 {
		t.Log("ERROR: OverlapArea =", got, "want 1.0")
		t.Fail()
	}
	c := mustBox(t, Point{5, 5}, Point{6, 6})
	if got := a.OverlapArea(c); got != 0 {
		t.Log("ERROR: disjoint OverlapArea should be 0, got", got)
		t.Fail()
	}
}

func TestMBR(t *testing.T) {
	boxes := []Box{
		mustBox(t, Point{0, 0}, Point{1, 1}),
		mustBox(t, Point{5, -5}, Point{6, -4}),
		mustBox(t, Point{-2, 2}, Point{-1, 3}),
	}
	got := MBR(boxes...)
	want := mustBox(t, Point{-2, -5}, Point{6, 3})
	if got != want {
		t.Log("ERROR: MBR =", got, "want", want)
		t.Fail()
	}
}

func TestContainsAndCenter(t *testing.T) {
	outer := mustBox(t, Point{0, 0}, Point{10, 10})
	inner := mustBox(t, Point{2, 2}, Point{4, 4})
	if !outer.Contains(inner) {
		t.Log("ERROR: outer should contain inner")
		t.Fail()
	}
	if inner.Contains(outer) {
		t.Log("ERROR: inner should not contain outer")
		t.Fail()
	}
	if c := outer.Center(); c != (Point{5, 5}) {
		t.Log("ERROR: Center() =", c, "want {5 5}")
		t.Fail()
	}
}

func TestAreaDifference(t *testing.T) {
	a := mustBox(t, Point{0, 0}, Point{2, 2})
	b := mustBox(t, Point{0, 0}, Point{3, 3})
	if got := a.AreaDifference(b); got != 5 {
		t.Log("ERROR: AreaDifference =", got, "want 5")
		t.Fail()
	}
	if got := a.AreaDifference(a); got != 0 {
		t.Log("ERROR: AreaDifference with itself =", got, "want 0")
		t.Fail()
	}
}

func TestMargin(t *testing.T) {
	b := mustBox(t, Point{0, 0}, Point{3, 4})
	if got := b.Margin(); got != 7 {
		t.Log("ERROR: Margin() =", got, "want 7")
		t.Fail()
	}
}

func TestDistanceTo(t *testing.T) {
	cases := []struct {
		a, b     Point
		expected float64
	}{
		{Point{0, 0}, Point{0, 0}, 0.0},
		{Point{3, 0}, Point{0, 0}, 3.0},
		{Point{0, 0}, Point{3, 4}, 5.0},
	}
	for _, c := range cases {
		if d := c.a.DistanceTo(c.b); d != c.expected {
			t.Log("ERROR: DistanceTo =", d, "want", c.expected)
			t.Fail()
		}
	}
}
