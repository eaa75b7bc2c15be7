package physics

// separation returns the unit axis from other to self, the current distance and
// the midpoint. Coincident points fall back to UnitX.
func separation(self, other *PointMass) (axis Vec2, dist float64, mid Vec2) {
	delta := self.pos.Sub(other.pos)
	mid = self.pos.Midpoint(other.pos)
	dist = delta.Length()
	if dist < Epsilon {
		return UnitX, dist, mid
	}
	return delta.Scale(1 / dist), dist, mid
}

// relax moves self and other symmetrically about their midpoint so that they
// end up target apart along their current axis.
func relax(self, other *PointMass, target float64) {
	axis, _, mid := separation(self, other)
	half := axis.Scale(target * 0.5)
	self.MoveTo(mid.Add(half))
	other.MoveTo(mid.Sub(half))
}

// clampedTarget clamps the current distance into [min, max]. ok is false when
// the distance is already inside the range and nothing needs to move.
func clampedTarget(self, other *PointMass, min, max float64) (target float64, ok bool) {
	dist := self.pos.Distance(other.pos)
	switch {
	case dist < min:
		return min, true
	case dist > max:
		return max, true
	default:
		return dist, false
	}
}

// springForce is the Hookean pull toward the rest separation along the current axis.
func springForce(self, other *PointMass, rest, k float64) Vec2 {
	axis, _, _ := separation(self, other)
	return other.pos.Add(axis.Scale(rest)).Sub(self.pos).Scale(k)
}

// Rigid keeps two points at a fixed distance. It generates no force.
type Rigid struct {
	other  PointRef
	length float64
}

func NewRigid(other PointRef, length float64) *Rigid {
	return &Rigid{other: other, length: length}
}

func (c *Rigid) Other() PointRef { return c.other }
func (c *Rigid) Length() float64 { return c.length }

func (c *Rigid) Satisfy(self *PointMass) {
	other := c.other.Point()
	if other == nil {
		return
	}
	relax(self, other, c.length)
}

func (c *Rigid) GetForce(*PointMass) Vec2 { return Vec2{} }

func (c *Rigid) DebugRender(sink LineSink, self *PointMass, color Color) {
	if other := c.other.Point(); other != nil {
		sink.DrawLine(self.pos, other.pos, color)
	}
}

// SemiRigid clamps the distance into [min, max] and reports a spring force
// toward rest.
type SemiRigid struct {
	other PointRef
	min   float64
	rest  float64
	max   float64
	force float64
}

func NewSemiRigid(other PointRef, min, rest, max, force float64) *SemiRigid {
	return &SemiRigid{other: other, min: min, rest: rest, max: max, force: force}
}

func (c *SemiRigid) Other() PointRef { return c.other }

// Lengths returns min, rest and max.
func (c *SemiRigid) Lengths() (min, rest, max float64) { return c.min, c.rest, c.max }

func (c *SemiRigid) ForceCoefficient() float64 { return c.force }

func (c *SemiRigid) Satisfy(self *PointMass) {
	other := c.other.Point()
	if other == nil {
		return
	}
	if target, ok := clampedTarget(self, other, c.min, c.max); ok {
		relax(self, other, target)
	}
}

func (c *SemiRigid) GetForce(self *PointMass) Vec2 {
	other := c.other.Point()
	if other == nil {
		return Vec2{}
	}
	return springForce(self, other, c.rest, c.force)
}

func (c *SemiRigid) DebugRender(sink LineSink, self *PointMass, color Color) {
	if other := c.other.Point(); other != nil {
		sink.DrawLine(self.pos, other.pos, color)
	}
}

// Link stores two complementary halves of a relationship, one in each
// endpoint's structural list. build is called with the reference to the
// endpoint the half points at.
func Link[C Constraint](a, b *PointMass, build func(other PointRef) C) (ab, ba C, err error) {
	if a == b {
		return ab, ba, ErrSamePoint
	}
	if !a.Ref().Valid() || !b.Ref().Valid() {
		return ab, ba, ErrDetachedPoint
	}
	if a.frozen() || b.frozen() {
		return ab, ba, ErrSealed
	}
	ab = build(b.Ref())
	ba = build(a.Ref())
	if err = a.AddConstraint(ListStructural, ab); err != nil {
		return ab, ba, err
	}
	if err = b.AddConstraint(ListStructural, ba); err != nil {
		return ab, ba, err
	}
	return ab, ba, nil
}

// LinkRigid joins a and b with a pair of Rigid halves.
func LinkRigid(a, b *PointMass, length float64) (*Rigid, *Rigid, error) {
	return Link(a, b, func(other PointRef) *Rigid { return NewRigid(other, length) })
}

// LinkSemiRigid joins a and b with a pair of SemiRigid halves.
func LinkSemiRigid(a, b *PointMass, min, rest, max, force float64) (*SemiRigid, *SemiRigid, error) {
	return Link(a, b, func(other PointRef) *SemiRigid { return NewSemiRigid(other, min, rest, max, force) })
}

// DefaultColor picks the debug color for a constraint variant.
func DefaultColor(c Constraint) Color {
	switch c.(type) {
	case *Rigid:
		return ColorRigid
	case *SemiRigid:
		return ColorSpring
	case *Dynamic:
		return ColorDynamic
	default:
		return ColorCollision
	}
}
