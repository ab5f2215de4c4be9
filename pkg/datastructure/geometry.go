package datastructure

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	// EPS. collinearity threshold for cross products of lon/lat vectors (degrees^2).
	EPS = 1e-12
)

type Point struct {
	x, y float64
}

func NewPoint(x, y float64) *Point {
	return &Point{x, y}
}

func pointFromOrb(p orb.Point) *Point {
	return &Point{p[0], p[1]}
}

func (p *Point) GetX() float64 {
	return p.x
}

func (p *Point) GetY() float64 {
	return p.y
}

type Vector struct {
	x, y float64
}

func NewVector(x, y float64) *Vector {
	return &Vector{x, y}
}

func toVec(a, b *Point) *Vector {
	return NewVector(b.x-a.x, b.y-a.y)
}

// cross product of two vectors a and b
func cross(a, b *Vector) float64 {
	return a.x*b.y - a.y*b.x
}

// dir. orientation of r relative to the directed line pq: 1 left (ccw), -1 right (cw), 0 collinear.
func dir(p, q, r *Point) int {
	x := cross(toVec(p, q), toVec(p, r))
	if math.Abs(x) <= EPS {
		return 0
	}
	if x > 0 {
		return 1
	}
	return -1
}

// onSegment. r is known to be collinear with pq; reports whether it lies within pq's extent.
func onSegment(p, q, r *Point) bool {
	return math.Min(p.x, q.x) <= r.x && r.x <= math.Max(p.x, q.x) &&
		math.Min(p.y, q.y) <= r.y && r.y <= math.Max(p.y, q.y)
}

// SegmentsIntersect. closed segments ab and pq share at least one point. Touching endpoints and
// collinear overlaps count.
func SegmentsIntersect(a, b, p, q *Point) bool {
	d1 := dir(p, q, a)
	d2 := dir(p, q, b)
	d3 := dir(a, b, p)
	d4 := dir(a, b, q)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	if d1 == 0 && onSegment(p, q, a) {
		return true
	}
	if d2 == 0 && onSegment(p, q, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, p) {
		return true
	}
	if d4 == 0 && onSegment(a, b, q) {
		return true
	}
	return false
}

func ringIntersectsLineString(ring orb.Ring, ls orb.LineString) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		r1 := pointFromOrb(ring[i])
		r2 := pointFromOrb(ring[(i+1)%n])

		if len(ls) == 1 {
			p := pointFromOrb(ls[0])
			if SegmentsIntersect(r1, r2, p, p) {
				return true
			}
			continue
		}

		for j := 0; j+1 < len(ls); j++ {
			if SegmentsIntersect(r1, r2, pointFromOrb(ls[j]), pointFromOrb(ls[j+1])) {
				return true
			}
		}
	}
	return false
}

// PolygonIntersectsLineString. planar intersection test between a polygon (exterior ring plus
// holes) and a linestring, in lon/lat space. Touching any ring counts as intersecting. A
// linestring that touches no ring lies entirely in one region, so one vertex decides it.
func PolygonIntersectsLineString(poly orb.Polygon, ls orb.LineString) bool {
	if len(poly) == 0 || len(ls) == 0 {
		return false
	}
	if !poly.Bound().Intersects(ls.Bound()) {
		return false
	}

	for _, ring := range poly {
		if ringIntersectsLineString(ring, ls) {
			return true
		}
	}

	return planar.PolygonContains(poly, ls[0])
}
