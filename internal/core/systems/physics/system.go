package physics

import "fmt"

// System owns the points of one deformable body. Points are only appended;
// indices stay stable for the lifetime of the system.
//
// A system starts in the setup phase. Seal ends it: after that neither points
// nor constraints can be added, which keeps constraint lists stable while the
// solver iterates them.
type System struct {
	points []*PointMass
	sealed bool
}

func NewSystem(capacity int) *System {
	return &System{points: make([]*PointMass, 0, capacity)}
}

// Add takes ownership of a detached point.
func (s *System) Add(p *PointMass) error {
	if s.sealed {
		return ErrSealed
	}
	if p.owner != nil {
		return ErrPointOwned
	}
	p.owner = s
	p.index = len(s.points)
	s.points = append(s.points, p)
	return nil
}

// CreatePoint creates a point at pos and adds it. mass defaults to DefaultMass.
func (s *System) CreatePoint(pos Vec2, mass ...float64) (*PointMass, error) {
	m := DefaultMass
	if len(mass) > 0 {
		m = mass[0]
	}
	p, err := NewPointMass(pos, m)
	if err != nil {
		return nil, err
	}
	if err = s.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Points returns the ordered point list. Callers must not modify the slice.
func (s *System) Points() []*PointMass { return s.points }
func (s *System) Len() int             { return len(s.points) }

// Point returns the i-th point or nil when out of range.
func (s *System) Point(i int) *PointMass {
	if i < 0 || i >= len(s.points) {
		return nil
	}
	return s.points[i]
}

// Ref returns an index handle to the i-th point.
func (s *System) Ref(i int) PointRef { return PointRef{sys: s, idx: i} }

// Seal ends the setup phase. It is idempotent.
func (s *System) Seal()        { s.sealed = true }
func (s *System) Sealed() bool { return s.sealed }

// ClearPointForces zeroes every accumulator. Called once per sub-step before
// any force is applied.
func (s *System) ClearPointForces() {
	for _, p := range s.points {
		p.ClearForce()
	}
}

func (s *System) Integrate(dt float64) {
	for _, p := range s.points {
		p.Integrate(dt)
	}
}

func (s *System) SatisfyConstraints() {
	for _, p := range s.points {
		p.SatisfyConstraints()
	}
}

func (s *System) SatisfyCollisionConstraints() {
	for _, p := range s.points {
		p.SatisfyCollisionConstraints()
	}
}

func (s *System) SatisfyCollisionLSConstraints() {
	for _, p := range s.points {
		p.SatisfyCollisionLSConstraints()
	}
}

func (s *System) GatherForces() {
	for _, p := range s.points {
		p.GatherForces()
	}
}

// Step runs one complete sub-step for this system alone. Forces applied by
// apply are added after the accumulators are cleared.
func (s *System) Step(dt float64, apply func(*PointMass)) error {
	if !s.sealed {
		return ErrNotSealed
	}
	if dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimestep, dt)
	}
	var each func(int, *PointMass)
	if apply != nil {
		each = func(_ int, p *PointMass) { apply(p) }
	}
	stepSystems([]*System{s}, dt, each)
	return nil
}

// stepSystems runs one sub-step over every system. Each pass completes for
// all systems before the next one starts: clear forces, apply forces,
// integrate, structural, collision, then segment collision constraints.
// apply receives the index of the system the point belongs to.
func stepSystems(systems []*System, dt float64, apply func(sys int, p *PointMass)) {
	for _, s := range systems {
		s.ClearPointForces()
	}
	if apply != nil {
		for i, s := range systems {
			for _, p := range s.points {
				apply(i, p)
			}
		}
	}
	for _, s := range systems {
		s.Integrate(dt)
	}
	for _, s := range systems {
		s.SatisfyConstraints()
	}
	for _, s := range systems {
		s.SatisfyCollisionConstraints()
	}
	for _, s := range systems {
		s.SatisfyCollisionLSConstraints()
	}
}

// CheckFinite returns the index of the first point with a non-finite position.
func (s *System) CheckFinite() (int, bool) {
	for i, p := range s.points {
		if !p.pos.IsFinite() || !p.prev.IsFinite() {
			return i, false
		}
	}
	return -1, true
}

// DebugRender draws every constraint of every point.
func (s *System) DebugRender(sink LineSink) {
	for _, p := range s.points {
		p.DebugRender(sink)
	}
}

// Centroid is the unweighted mean of all positions.
func (s *System) Centroid() Vec2 {
	if len(s.points) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range s.points {
		sum = sum.Add(p.pos)
	}
	return sum.Scale(1 / float64(len(s.points)))
}
