// Package geom provides the axis-aligned point and box primitives that the
// rtree package indexes. Operations are pure, total and branch-light: no
// operation here allocates beyond its return value, and none can panic on
// finite input.
package geom

import (
	"errors"
	"math"
)

// ErrInvalidCoordinate is returned by NewBox when given a NaN or infinite
// coordinate. Rejection happens here, at construction, so that the tree
// never has to deal with it.
var ErrInvalidCoordinate = errors.New("geom: coordinate is NaN or infinite")

// Point is a pair of finite real coordinates.
type Point struct {
	X, Y float64
}

// Box is an axis-aligned rectangle, normalized so that Lo holds the smaller
// coordinate on each axis and Hi the larger one. Zero-width or zero-height
// boxes are valid and are how point data is represented in the tree.
type Box struct {
	Lo, Hi Point
}

func legal(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NewBox builds the normalized bounding box of two corner points. The two
// points may be given in any order; NewBox sorts each axis independently.
func NewBox(a, b Point) (Box, error) {
	if !legal(a.X) || !legal(a.Y) || !legal(b.X) || !legal(b.Y) {
		return Box{}, ErrInvalidCoordinate
	}
	box := Box{
		Lo: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Hi: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
	return box, nil
}

// Area returns the area of the box. Degenerate (zero-width/height) boxes
// have an area of zero.
func (b Box) Area() float64 {
	return (b.Hi.X - b.Lo.X) * (b.Hi.Y - b.Lo.Y)
}

// Margin returns half the perimeter of the box (width + height). Unused by
// the quadratic split this package's caller performs, but kept as a general
// tightness metric the way the teacher's Rectangle.Margin was.
func (b Box) Margin() float64 {
	return (b.Hi.X - b.Lo.X) + (b.Hi.Y - b.Lo.Y)
}

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{
		X: b.Lo.X + (b.Hi.X-b.Lo.X)/2,
		Y: b.Lo.Y + (b.Hi.Y-b.Lo.Y)/2,
	}
}

// ContainsPoint reports whether p lies within b, closed interval.
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.Lo.X && p.X <= b.Hi.X && p.Y >= b.Lo.Y && p.Y <= b.Hi.Y
}

// Contains reports whether b fully contains o.
func (b Box) Contains(o Box) bool {
	return b.ContainsPoint(o.Lo) && b.ContainsPoint(o.Hi)
}

// Overlap reports whether b and o intersect, using closed intervals: boxes
// that only touch along an edge or at a corner are considered overlapping.
// This definition is part of the public contract: host-side oracle tests
// are expected to mirror it exactly.
func (b Box) Overlap(o Box) bool {
	return b.Hi.X >= o.Lo.X && o.Hi.X >= b.Lo.X &&
		b.Hi.Y >= o.Lo.Y && o.Hi.Y >= b.Lo.Y
}

// Union returns the minimum bounding box containing both b and o.
func (b Box) Union(o Box) Box {
	if b.Contains(o) {
		return b
	}
	if o.Contains(b) {
		return o
	}
	return Box{
		Lo: Point{X: math.Min(b.Lo.X, o.Lo.X), Y: math.Min(b.Lo.Y, o.Lo.Y)},
		Hi: Point{X: math.Max(b.Hi.X, o.Hi.X), Y: math.Max(b.Hi.Y, o.Hi.Y)},
	}
}

// Enlargement returns how much larger b's area would become if it had to
// grow to include o. Non-negative by construction.
func (b Box) Enlargement(o Box) float64 {
	return b.Union(o).Area() - b.Area()
}

// OverlapArea returns the area of the intersection of b and o, or zero if
// they don't overlap.
func (b Box) OverlapArea(o Box) float64 {
	if !b.Overlap(o) {
		return 0
	}
	if b.Contains(o) {
		return o.Area()
	}
	if o.Contains(b) {
		return b.Area()
	}
	left := math.Max(b.Lo.X, o.Lo.X)
	right := math.Min(b.Hi.X, o.Hi.X)
	bottom := math.Max(b.Lo.Y, o.Lo.Y)
	top := math.Min(b.Hi.Y, o.Hi.Y)
	return (right - left) * (top - bottom)
}

// AreaDifference returns the absolute difference in area between b and o.
func (b Box) AreaDifference(o Box) float64 {
	return math.Abs(b.Area() - o.Area())
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// MBR returns the minimum bounding box of a non-empty slice of boxes. It
// panics if boxes is empty.
func MBR(boxes ...Box) Box {
	mbr := boxes[0]
	for _, b := range boxes[1:] {
		mbr = mbr.Union(b)
	}
	return mbr
}
