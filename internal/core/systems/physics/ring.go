package physics

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// LengthSpec describes a spring-like link relative to its rest length.
type LengthSpec struct {
	MinRatio float64 `json:"min_ratio" yaml:"min_ratio"`
	MaxRatio float64 `json:"max_ratio" yaml:"max_ratio"`
	Force    float64 `json:"force" yaml:"force"`
}

// RingSpec describes a ring body: a hub point surrounded by Segments rim points.
type RingSpec struct {
	Name     string     `json:"name" yaml:"name"`
	Center   Vec2       `json:"center" yaml:"center"`
	Radius   float64    `json:"radius" yaml:"radius"`
	Segments int        `json:"segments" yaml:"segments"`
	Mass     float64    `json:"mass" yaml:"mass"`
	Rim      LengthSpec `json:"rim" yaml:"rim"`
	Spoke    LengthSpec `json:"spoke" yaml:"spoke"`
	Shape    Mode       `json:"shape" yaml:"-"`
	Braced   bool       `json:"braced" yaml:"braced"`
}

// DefaultRingSpec returns a soft, unbraced ring.
func DefaultRingSpec(name string, center Vec2, radius float64) RingSpec {
	return RingSpec{
		Name:     name,
		Center:   center,
		Radius:   radius,
		Segments: 16,
		Mass:     DefaultMass,
		Rim:      LengthSpec{MinRatio: 0.6, MaxRatio: 1.4, Force: 0.5},
		Spoke:    LengthSpec{MinRatio: 0.7, MaxRatio: 1.2, Force: 0.8},
		Shape:    ModeSemiRigid,
	}
}

func (s RingSpec) Validate() error {
	switch {
	case s.Segments < 3:
		return fmt.Errorf("%w: ring %q needs at least 3 segments, got %d", ErrInvalidBody, s.Name, s.Segments)
	case s.Radius <= 0:
		return fmt.Errorf("%w: ring %q radius must be positive", ErrInvalidBody, s.Name)
	case s.Mass <= 0:
		return fmt.Errorf("%w: ring %q mass must be positive", ErrInvalidBody, s.Name)
	case !s.Center.IsFinite():
		return fmt.Errorf("%w: ring %q center is not finite", ErrInvalidBody, s.Name)
	case s.Rim.MinRatio > 1 || s.Rim.MaxRatio < 1 || s.Spoke.MinRatio > 1 || s.Spoke.MaxRatio < 1:
		return fmt.Errorf("%w: ring %q ratios must bracket 1", ErrInvalidBody, s.Name)
	}
	return nil
}

// Body is a deformable ring: one hub point and an ordered rim.
type Body struct {
	ID   uuid.UUID
	Name string

	sys    *System
	hub    int
	rim    []int
	spokes []*Dynamic
	drive  Vec2
}

// NewRing builds a ring body in the setup phase. Rim neighbours are joined by
// SemiRigid links, each rim point is tied to the hub by Dynamic spokes and,
// when braced, every second rim point is held by a Rigid link.
func NewRing(spec RingSpec) (*Body, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	n := spec.Segments
	b := &Body{
		ID:   uuid.New(),
		Name: spec.Name,
		sys:  NewSystem(n + 1),
		rim:  make([]int, 0, n),
	}

	hub, err := b.sys.CreatePoint(spec.Center, spec.Mass)
	if err != nil {
		return nil, err
	}
	hub.SetTexCoord(Vec2{0.5, 0.5})
	b.hub = hub.Index()

	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		dir := Vec2{math.Cos(a), math.Sin(a)}
		p, err := b.sys.CreatePoint(spec.Center.Add(dir.Scale(spec.Radius)), spec.Mass)
		if err != nil {
			return nil, err
		}
		p.SetTexCoord(Vec2{0.5 + dir.X*0.5, 0.5 + dir.Y*0.5})
		b.rim = append(b.rim, p.Index())
	}

	chord := 2 * spec.Radius * math.Sin(math.Pi/float64(n))
	for i := 0; i < n; i++ {
		p, q := b.RimPoint(i), b.RimPoint((i+1)%n)
		r := spec.Rim
		if _, _, err = LinkSemiRigid(p, q, chord*r.MinRatio, chord, chord*r.MaxRatio, r.Force); err != nil {
			return nil, err
		}
	}

	s := spec.Spoke
	for i := 0; i < n; i++ {
		ab, ba, err := LinkDynamic(hub, b.RimPoint(i), spec.Shape,
			spec.Radius*s.MinRatio, spec.Radius, spec.Radius*s.MaxRatio, s.Force)
		if err != nil {
			return nil, err
		}
		b.spokes = append(b.spokes, ab, ba)
	}

	if spec.Braced && n > 4 {
		brace := 2 * spec.Radius * math.Sin(2*math.Pi/float64(n))
		for i := 0; i < n; i++ {
			if _, _, err = LinkRigid(b.RimPoint(i), b.RimPoint((i+2)%n), brace); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func (b *Body) System() *System    { return b.sys }
func (b *Body) Hub() *PointMass    { return b.sys.Point(b.hub) }
func (b *Body) RimLen() int        { return len(b.rim) }
func (b *Body) Spokes() []*Dynamic { return b.spokes }

// RimPoint returns the i-th rim point in angular order.
func (b *Body) RimPoint(i int) *PointMass { return b.sys.Point(b.rim[i]) }

// RimRef returns the reference of the i-th rim point.
func (b *Body) RimRef(i int) PointRef { return b.sys.Ref(b.rim[i]) }

// RimContains reports whether p lies inside the rim polygon, by the even-odd
// rule.
func (b *Body) RimContains(p Vec2) bool {
	in := false
	n := len(b.rim)
	for i := 0; i < n; i++ {
		a, c := b.RimPoint(i).pos, b.RimPoint((i+1)%n).pos
		if (a.Y > p.Y) != (c.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(c.X-a.X)/(c.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}

// NearestRimEdge returns i such that the edge from rim point i to rim point
// i+1 is the closest to p. Degenerate edges are skipped; ok is false when
// every edge is degenerate.
func (b *Body) NearestRimEdge(p Vec2) (i int, ok bool) {
	n := len(b.rim)
	best := math.Inf(1)
	i = -1
	for k := 0; k < n; k++ {
		a, c := b.RimPoint(k).pos, b.RimPoint((k+1)%n).pos
		seg := c.Sub(a)
		lenSq := seg.LengthSq()
		if lenSq < Epsilon*Epsilon {
			continue
		}
		t := math.Max(0, math.Min(1, p.Sub(a).Dot(seg)/lenSq))
		if d := p.Sub(a).Sub(seg.Scale(t)).Length(); d < best {
			best, i = d, k
		}
	}
	return i, i >= 0
}

// RimArea is the signed area of the rim polygon. Its sign gives the winding
// of the rim.
func (b *Body) RimArea() float64 {
	var sum float64
	n := len(b.rim)
	for i := 0; i < n; i++ {
		sum += b.RimPoint(i).pos.Cross(b.RimPoint((i+1)%n).pos)
	}
	return sum * 0.5
}

// Center is the centroid of all points of the body.
func (b *Body) Center() Vec2 { return b.sys.Centroid() }

// Push sets a force spread evenly over the body's points. It is applied on
// every sub-step until cleared by the arena at the end of the frame.
func (b *Body) Push(force Vec2) { b.drive = b.drive.Add(force) }

func (b *Body) Drive() Vec2 { return b.drive }
func (b *Body) clearDrive() { b.drive = Vec2{} }

// Teleport moves the body so its centroid lands on pos, discarding velocity.
func (b *Body) Teleport(pos Vec2) error {
	if !pos.IsFinite() {
		return fmt.Errorf("%w: %v", ErrNonFinite, pos)
	}
	offset := pos.Sub(b.Center())
	for _, p := range b.sys.points {
		if err := p.SetPosition(p.pos.Add(offset)); err != nil {
			return err
		}
	}
	return nil
}

// SetShapeMode switches every spoke to mode.
func (b *Body) SetShapeMode(mode Mode) {
	for _, c := range b.spokes {
		c.SetMode(mode)
	}
}

// Soften loosens the spokes by factor in (0, 1]: the allowed range widens and
// the spring weakens. Harden undoes it exactly.
func (b *Body) Soften(factor float64) error {
	if factor <= 0 || factor > 1 {
		return fmt.Errorf("%w: soften factor %v out of (0, 1]", ErrInvalidBody, factor)
	}
	for _, c := range b.spokes {
		c.UseTempMinLength(c.min.Original * factor)
		c.UseTempMaxLength(c.max.Original / factor)
		c.UseTempForce(c.force.Original * factor)
	}
	return nil
}

// Harden restores every spoke parameter to its construction value.
func (b *Body) Harden() {
	for _, c := range b.spokes {
		c.ResetAll()
	}
}

// Softened reports whether any spoke parameter is overridden.
func (b *Body) Softened() bool {
	for _, c := range b.spokes {
		if c.min.Overridden() || c.max.Overridden() || c.force.Overridden() || c.rest.Overridden() {
			return true
		}
	}
	return false
}
