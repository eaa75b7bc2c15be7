package physics

import "fmt"

// DefaultMass is used when a point is created without an explicit mass.
const DefaultMass = 1.0

// PointMass is a Verlet particle. Velocity is implicit in the difference
// between the current and the previous position.
type PointMass struct {
	pos      Vec2
	prev     Vec2
	force    Vec2
	mass     float64
	texCoord Vec2

	owner *System
	index int

	constraints []Constraint
	collision   []Constraint
	collisionLS []Constraint
}

// NewPointMass creates an unowned point at rest at pos.
func NewPointMass(pos Vec2, mass float64) (*PointMass, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	if !pos.IsFinite() {
		return nil, fmt.Errorf("%w: %v", ErrNonFinite, pos)
	}
	return &PointMass{pos: pos, prev: pos, mass: mass, index: -1}, nil
}

func (p *PointMass) Position() Vec2         { return p.pos }
func (p *PointMass) PreviousPosition() Vec2 { return p.prev }
func (p *PointMass) Force() Vec2            { return p.force }
func (p *PointMass) Mass() float64          { return p.mass }
func (p *PointMass) TexCoord() Vec2         { return p.texCoord }
func (p *PointMass) SetTexCoord(uv Vec2)    { p.texCoord = uv }

// Index returns the position of the point inside its owning system, or -1.
func (p *PointMass) Index() int { return p.index }

// Owner returns the owning system, nil for a detached point.
func (p *PointMass) Owner() *System { return p.owner }

// Ref returns an index handle to this point. It is only valid once the point
// has been added to a system.
func (p *PointMass) Ref() PointRef { return PointRef{sys: p.owner, idx: p.index} }

// Velocity estimates the velocity over the last step of length dt.
func (p *PointMass) Velocity(dt float64) Vec2 {
	if dt <= 0 {
		return Vec2{}
	}
	return p.pos.Sub(p.prev).Scale(1 / dt)
}

// SetPosition places the point at pos with no implicit velocity. Non-finite
// input is rejected and leaves the point unchanged.
func (p *PointMass) SetPosition(pos Vec2) error {
	if !pos.IsFinite() {
		return fmt.Errorf("%w: %v", ErrNonFinite, pos)
	}
	p.pos = pos
	p.prev = pos
	return nil
}

// MoveTo sets the current position only. The previous position is kept, so
// the correction shows up in the implicit velocity of the next step.
func (p *PointMass) MoveTo(pos Vec2) { p.pos = pos }

func (p *PointMass) AddForce(f Vec2) { p.force = p.force.Add(f) }
func (p *PointMass) SetForce(f Vec2) { p.force = f }
func (p *PointMass) ClearForce()     { p.force = Vec2{} }

// Integrate advances the point by one explicit Verlet step:
// x' = x + (x - x_prev) + (F/m)·dt².
func (p *PointMass) Integrate(dt float64) {
	next := p.pos.Add(p.pos.Sub(p.prev)).Add(p.force.Scale(dt * dt / p.mass))
	p.prev = p.pos
	p.pos = next
}

// AddConstraint appends c to one of the point's lists. Lists are frozen once
// the owning system is sealed.
func (p *PointMass) AddConstraint(kind ListKind, c Constraint) error {
	if p.frozen() {
		return ErrSealed
	}
	switch kind {
	case ListStructural:
		p.constraints = append(p.constraints, c)
	case ListCollision:
		p.collision = append(p.collision, c)
	case ListCollisionLS:
		p.collisionLS = append(p.collisionLS, c)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownList, kind)
	}
	return nil
}

func (p *PointMass) frozen() bool { return p.owner != nil && p.owner.sealed }

// Constraints returns the list for kind. The slice must not be modified.
func (p *PointMass) Constraints(kind ListKind) []Constraint {
	switch kind {
	case ListStructural:
		return p.constraints
	case ListCollision:
		return p.collision
	case ListCollisionLS:
		return p.collisionLS
	default:
		return nil
	}
}

func (p *PointMass) SatisfyConstraints() {
	for _, c := range p.constraints {
		c.Satisfy(p)
	}
}

func (p *PointMass) SatisfyCollisionConstraints() {
	for _, c := range p.collision {
		c.Satisfy(p)
	}
}

func (p *PointMass) SatisfyCollisionLSConstraints() {
	for _, c := range p.collisionLS {
		c.Satisfy(p)
	}
}

// GatherForces adds the reported force of every structural constraint to the
// accumulator. It does not take part in positional correction.
func (p *PointMass) GatherForces() {
	for _, c := range p.constraints {
		p.force = p.force.Add(c.GetForce(p))
	}
}

// DebugRender draws every constraint of the point.
func (p *PointMass) DebugRender(sink LineSink) {
	for _, c := range p.constraints {
		c.DebugRender(sink, p, DefaultColor(c))
	}
	for _, c := range p.collision {
		c.DebugRender(sink, p, ColorCollision)
	}
	for _, c := range p.collisionLS {
		c.DebugRender(sink, p, ColorCollision)
	}
}

// PointRef addresses a point by index inside its owning system.
type PointRef struct {
	sys *System
	idx int
}

// Point resolves the reference, nil if it is unset.
func (r PointRef) Point() *PointMass {
	if r.sys == nil || r.idx < 0 || r.idx >= len(r.sys.points) {
		return nil
	}
	return r.sys.points[r.idx]
}

func (r PointRef) Index() int      { return r.idx }
func (r PointRef) System() *System { return r.sys }
func (r PointRef) Valid() bool     { return r.Point() != nil }
