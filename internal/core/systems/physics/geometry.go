package physics

import "math"

// Rect is an axis-aligned rectangle in screen orientation: Y grows downward,
// so Top is the smaller Y.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Empty() bool     { return r.W <= 0 || r.H <= 0 }
func (r Rect) Center() Vec2    { return Vec2{r.X + r.W*0.5, r.Y + r.H*0.5} }

// Circle is a center and a radius.
type Circle struct {
	Center Vec2    `json:"center" yaml:"center"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Edge names a rectangle side. The declaration order is the tie-break order
// of RectNearestEdge.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Normal is the outward unit normal of the edge.
func (e Edge) Normal() Vec2 {
	switch e {
	case EdgeLeft:
		return Vec2{X: -1}
	case EdgeRight:
		return Vec2{X: 1}
	case EdgeTop:
		return Vec2{Y: -1}
	default:
		return Vec2{Y: 1}
	}
}

// PointInRect reports whether p lies inside r. Points on an edge count as inside.
func PointInRect(p Vec2, r Rect) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// RectNearestEdge returns the edge of r closest to p, the projection of p onto
// that edge and the edge's outward normal. Equal distances resolve in the
// order left, right, top, bottom.
func RectNearestEdge(p Vec2, r Rect) (edge Edge, contact Vec2, normal Vec2) {
	dists := [4]float64{
		math.Abs(p.X - r.Left()),
		math.Abs(r.Right() - p.X),
		math.Abs(p.Y - r.Top()),
		math.Abs(r.Bottom() - p.Y),
	}
	best := 0
	for i := 1; i < len(dists); i++ {
		if dists[i] < dists[best] {
			best = i
		}
	}
	edge = Edge(best)
	switch edge {
	case EdgeLeft:
		contact = Vec2{r.Left(), p.Y}
	case EdgeRight:
		contact = Vec2{r.Right(), p.Y}
	case EdgeTop:
		contact = Vec2{p.X, r.Top()}
	case EdgeBottom:
		contact = Vec2{p.X, r.Bottom()}
	}
	return edge, contact, edge.Normal()
}

// ClampToRect returns the point of r closest to p.
func ClampToRect(p Vec2, r Rect) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, r.Left()), r.Right()),
		Y: math.Min(math.Max(p.Y, r.Top()), r.Bottom()),
	}
}

// PointInCircle reports whether p is strictly closer to the center than the radius.
func PointInCircle(p Vec2, c Circle) bool {
	return p.Distance(c.Center) < c.Radius
}

// CirclesOverlap reports whether the center distance is below the sum of the radii.
func CirclesOverlap(a, b Circle) bool {
	return a.Center.Distance(b.Center) < a.Radius+b.Radius
}

// CircleRectOverlap is an approximation: it only tests the four axis-extremal
// points of the circle against the rectangle. A circle that clips a corner of
// the rectangle without covering any of those points is reported as separate.
func CircleRectOverlap(c Circle, r Rect) bool {
	x, y, rad := c.Center.X, c.Center.Y, c.Radius
	return PointInRect(Vec2{x - rad, y}, r) ||
		PointInRect(Vec2{x + rad, y}, r) ||
		PointInRect(Vec2{x, y - rad}, r) ||
		PointInRect(Vec2{x, y + rad}, r)
}

// CircleContact returns the point on the circle boundary along the ray from
// the center through p. A point at the center is pushed along +X.
func CircleContact(p Vec2, c Circle) (contact Vec2, normal Vec2) {
	d := p.Sub(c.Center)
	if d.Length() < Epsilon {
		normal = UnitX
	} else {
		normal = d.Normalize()
	}
	return c.Center.Add(normal.Scale(c.Radius)), normal
}

// line is y = slope·x + intercept, or x = at when vertical.
type line struct {
	slope, intercept float64
	vertical         bool
	at               float64
}

func lineThrough(a, b Vec2) line {
	if math.Abs(b.X-a.X) < Epsilon {
		return line{vertical: true, at: a.X}
	}
	slope := (b.Y - a.Y) / (b.X - a.X)
	return line{slope: slope, intercept: a.Y - slope*a.X}
}

// inOpenRange reports lo < v < hi. A zero-width range only accepts v equal to
// its bound, otherwise horizontal and vertical segments could never be hit.
func inOpenRange(v, lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo < Epsilon {
		return math.Abs(v-lo) < Epsilon
	}
	return v > lo && v < hi
}

// SegmentsIntersect intersects segment a1-a2 with segment b1-b2. The point of
// intersection of the two supporting lines is accepted only if it lies inside
// the open bounding boxes of both segments.
//
// Vertical segments are intersected through their x = c line. Parallel or
// collinear segments, and two vertical segments, report no intersection.
func SegmentsIntersect(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	la, lb := lineThrough(a1, a2), lineThrough(b1, b2)

	var hit Vec2
	switch {
	case la.vertical && lb.vertical:
		return Vec2{}, false
	case la.vertical:
		hit = Vec2{la.at, lb.slope*la.at + lb.intercept}
	case lb.vertical:
		hit = Vec2{lb.at, la.slope*lb.at + la.intercept}
	default:
		if math.Abs(la.slope-lb.slope) < Epsilon {
			return Vec2{}, false
		}
		x := (lb.intercept - la.intercept) / (la.slope - lb.slope)
		hit = Vec2{x, la.slope*x + la.intercept}
	}

	if !inOpenRange(hit.X, a1.X, a2.X) || !inOpenRange(hit.Y, a1.Y, a2.Y) {
		return Vec2{}, false
	}
	if !inOpenRange(hit.X, b1.X, b2.X) || !inOpenRange(hit.Y, b1.Y, b2.Y) {
		return Vec2{}, false
	}
	return hit, true
}
