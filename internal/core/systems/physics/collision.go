package physics

import "math"

// circleDebugSegments is the number of chords used to draw a circle.
const circleDebugSegments = 16

func drawRect(sink LineSink, r Rect, color Color) {
	tl, tr := Vec2{r.Left(), r.Top()}, Vec2{r.Right(), r.Top()}
	bl, br := Vec2{r.Left(), r.Bottom()}, Vec2{r.Right(), r.Bottom()}
	sink.DrawLine(tl, tr, color)
	sink.DrawLine(tr, br, color)
	sink.DrawLine(br, bl, color)
	sink.DrawLine(bl, tl, color)
}

func drawCircle(sink LineSink, c Circle, color Color) {
	prev := c.Center.Add(Vec2{X: c.Radius})
	for i := 1; i <= circleDebugSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleDebugSegments
		next := c.Center.Add(Vec2{c.Radius * math.Cos(a), c.Radius * math.Sin(a)})
		sink.DrawLine(prev, next, color)
		prev = next
	}
}

// BoundsConstraint keeps a point inside the play zone.
type BoundsConstraint struct {
	Bounds Rect
}

func NewBoundsConstraint(bounds Rect) *BoundsConstraint {
	return &BoundsConstraint{Bounds: bounds}
}

func (c *BoundsConstraint) Satisfy(self *PointMass) {
	if PointInRect(self.pos, c.Bounds) {
		return
	}
	self.MoveTo(ClampToRect(self.pos, c.Bounds))
}

func (c *BoundsConstraint) GetForce(*PointMass) Vec2 { return Vec2{} }

func (c *BoundsConstraint) DebugRender(sink LineSink, _ *PointMass, color Color) {
	drawRect(sink, c.Bounds, color)
}

// CircleObstacleConstraint pushes a point out of a static circle.
type CircleObstacleConstraint struct {
	Obstacle Circle
}

func NewCircleObstacleConstraint(obstacle Circle) *CircleObstacleConstraint {
	return &CircleObstacleConstraint{Obstacle: obstacle}
}

func (c *CircleObstacleConstraint) Satisfy(self *PointMass) {
	if !PointInCircle(self.pos, c.Obstacle) {
		return
	}
	contact, _ := CircleContact(self.pos, c.Obstacle)
	self.MoveTo(contact)
}

func (c *CircleObstacleConstraint) GetForce(*PointMass) Vec2 { return Vec2{} }

func (c *CircleObstacleConstraint) DebugRender(sink LineSink, _ *PointMass, color Color) {
	drawCircle(sink, c.Obstacle, color)
}

// RectObstacleConstraint pushes a point out of a static rectangle through its
// nearest edge.
type RectObstacleConstraint struct {
	Obstacle Rect
}

func NewRectObstacleConstraint(obstacle Rect) *RectObstacleConstraint {
	return &RectObstacleConstraint{Obstacle: obstacle}
}

func (c *RectObstacleConstraint) Satisfy(self *PointMass) {
	if !PointInRect(self.pos, c.Obstacle) {
		return
	}
	_, contact, _ := RectNearestEdge(self.pos, c.Obstacle)
	self.MoveTo(contact)
}

func (c *RectObstacleConstraint) GetForce(*PointMass) Vec2 { return Vec2{} }

func (c *RectObstacleConstraint) DebugRender(sink LineSink, _ *PointMass, color Color) {
	drawRect(sink, c.Obstacle, color)
}

// DefaultSkin is the distance a point is kept on its own side of a segment.
const DefaultSkin = 0.05

// SegmentConstraint stops a point from passing through the segment between
// two points of another body. The test is relative: the point collides when
// it lies on the other side of the segment than it did before integration,
// whether the point moved or the segment swept over it. It is then put back
// Skin away on its original side, the point and the segment each taking half
// of the correction along the segment normal.
type SegmentConstraint struct {
	a, b PointRef
	Skin float64
}

func NewSegmentConstraint(a, b PointRef) *SegmentConstraint {
	return &SegmentConstraint{a: a, b: b, Skin: DefaultSkin}
}

// Endpoints returns the references of the segment ends.
func (c *SegmentConstraint) Endpoints() (PointRef, PointRef) { return c.a, c.b }

func (c *SegmentConstraint) Satisfy(self *PointMass) {
	pa, pb := c.a.Point(), c.b.Point()
	if pa == nil || pb == nil || pa == self || pb == self {
		return
	}
	seg := pb.pos.Sub(pa.pos)
	lenSq := seg.LengthSq()
	if lenSq < Epsilon*Epsilon {
		return
	}
	before := pb.prev.Sub(pa.prev).Cross(self.prev.Sub(pa.prev))
	after := seg.Cross(self.pos.Sub(pa.pos))
	if before == 0 || (after != 0 && (before > 0) == (after > 0)) {
		return
	}
	// Crossing the supporting line beyond an endpoint is not a hit.
	if t := self.pos.Sub(pa.pos).Dot(seg) / lenSq; t < 0 || t > 1 {
		return
	}

	l := math.Sqrt(lenSq)
	normal := Vec2{-seg.Y / l, seg.X / l}
	want := c.Skin
	if before < 0 {
		want = -want
	}
	push(self, pa, pb, normal.Scale((want-after/l)*0.5))
}

// push moves self by shift and both segment ends by -shift.
func push(self, pa, pb *PointMass, shift Vec2) {
	self.MoveTo(self.pos.Add(shift))
	pa.MoveTo(pa.pos.Sub(shift))
	pb.MoveTo(pb.pos.Sub(shift))
}

func (c *SegmentConstraint) GetForce(*PointMass) Vec2 { return Vec2{} }

func (c *SegmentConstraint) DebugRender(sink LineSink, _ *PointMass, color Color) {
	pa, pb := c.a.Point(), c.b.Point()
	if pa == nil || pb == nil {
		return
	}
	sink.DrawLine(pa.pos, pb.pos, color)
}

// RimConstraint recovers a point that ended up inside the rim of another
// body, for instance when a correction applied to a neighbouring point moved
// a segment over it. The point leaves through the nearest rim edge and ends
// Skin outside it, sharing the correction with that edge.
type RimConstraint struct {
	body *Body
	Skin float64
}

func NewRimConstraint(body *Body) *RimConstraint {
	return &RimConstraint{body: body, Skin: DefaultSkin}
}

// Body returns the body whose rim the point is kept out of.
func (c *RimConstraint) Body() *Body { return c.body }

func (c *RimConstraint) Satisfy(self *PointMass) {
	if c.body == nil || self.owner == c.body.sys || !c.body.RimContains(self.pos) {
		return
	}
	i, ok := c.body.NearestRimEdge(self.pos)
	if !ok {
		return
	}
	pa, pb := c.body.RimPoint(i), c.body.RimPoint((i+1)%c.body.RimLen())
	seg := pb.pos.Sub(pa.pos)
	l := seg.Length()
	normal := Vec2{seg.Y / l, -seg.X / l}
	if c.body.RimArea() <= 0 {
		normal = normal.Scale(-1)
	}
	dist := self.pos.Sub(pa.pos).Dot(normal)
	push(self, pa, pb, normal.Scale((c.Skin-dist)*0.5))
}

func (c *RimConstraint) GetForce(*PointMass) Vec2 { return Vec2{} }

// DebugRender draws nothing: the rim edges are already drawn by the
// segment constraints of the same point.
func (c *RimConstraint) DebugRender(LineSink, *PointMass, Color) {}
