package physics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/softbody/internal/core/events/bus"
	"github.com/zeusync/softbody/internal/core/observability/log"
)

// DefaultSubSteps is the number of physics sub-steps per rendered frame.
const DefaultSubSteps = 6

// ArenaConfig holds the static geometry and the stepping parameters.
type ArenaConfig struct {
	Bounds   Rect
	Circles  []Circle
	Rects    []Rect
	Gravity  Vec2
	Damping  float64
	SubSteps int

	// CheckFinite scans every point after each frame and fails the frame on
	// the first NaN or infinite position.
	CheckFinite bool
	// BodyCollisions wires segment constraints between the rims of every
	// pair of bodies.
	BodyCollisions bool
	// ReportForces leaves the gathered spring forces in the accumulators at
	// the end of each frame so Force() reflects body strain.
	ReportForces bool
}

func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Bounds:         Rect{W: 800, H: 600},
		Gravity:        Vec2{Y: 500},
		SubSteps:       DefaultSubSteps,
		CheckFinite:    true,
		BodyCollisions: true,
	}
}

func (c ArenaConfig) Validate() error {
	if c.SubSteps < 1 {
		return fmt.Errorf("physics: sub-steps must be at least 1, got %d", c.SubSteps)
	}
	if c.Damping < 0 {
		return fmt.Errorf("physics: damping must not be negative, got %v", c.Damping)
	}
	if !c.Gravity.IsFinite() {
		return fmt.Errorf("%w: gravity %v", ErrNonFinite, c.Gravity)
	}
	for i, circle := range c.Circles {
		if circle.Radius <= 0 {
			return fmt.Errorf("physics: obstacle circle %d has non-positive radius", i)
		}
	}
	return nil
}

// Arena is the driver: it owns the bodies and the static geometry and steps
// them in lockstep. It is not safe for concurrent use.
type Arena struct {
	cfg     ArenaConfig
	bodies  []*Body
	systems []*System
	byID    map[uuid.UUID]*Body

	sealed      bool
	frame       uint64
	time        float64
	constraints int

	logger log.Log
	bus    bus.EventBus
}

type Option func(*Arena)

func WithLogger(l log.Log) Option {
	return func(a *Arena) { a.logger = l }
}

// WithBus makes the arena publish its events on b.
func WithBus(b bus.EventBus) Option {
	return func(a *Arena) { a.bus = b }
}

func NewArena(cfg ArenaConfig, opts ...Option) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Arena{
		cfg:    cfg,
		byID:   make(map[uuid.UUID]*Body),
		logger: log.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Arena) Config() ArenaConfig { return a.cfg }
func (a *Arena) Bodies() []*Body     { return a.bodies }
func (a *Arena) Frame() uint64       { return a.frame }
func (a *Arena) Time() float64       { return a.time }
func (a *Arena) Sealed() bool        { return a.sealed }

// Constraints returns the number of constraints wired at seal time,
// structural ones included.
func (a *Arena) Constraints() int { return a.constraints }

func (a *Arena) Body(id uuid.UUID) (*Body, error) {
	b, ok := a.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBodyNotFound, id)
	}
	return b, nil
}

// BodyByName returns the first body with the given name.
func (a *Arena) BodyByName(name string) (*Body, error) {
	for _, b := range a.bodies {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrBodyNotFound, name)
}

// AddBody registers a body during setup.
func (a *Arena) AddBody(b *Body) error {
	if a.sealed || b.sys.Sealed() {
		return ErrSealed
	}
	if _, dup := a.byID[b.ID]; dup {
		return fmt.Errorf("%w: body %s added twice", ErrInvalidBody, b.ID)
	}
	a.bodies = append(a.bodies, b)
	a.byID[b.ID] = b

	a.logger.Debug("body added",
		log.String("body", b.Name),
		log.String("id", b.ID.String()),
		log.Int("points", b.sys.Len()),
	)
	a.publish(EventBodyAdded, BodyAddedData{BodyID: b.ID.String(), Name: b.Name, Points: b.sys.Len()})
	return nil
}

// Seal wires the collision constraints of every body and ends setup. Calling
// it again is a no-op.
func (a *Arena) Seal() error {
	if a.sealed {
		return nil
	}
	for _, b := range a.bodies {
		if err := a.wireStatic(b); err != nil {
			return err
		}
	}
	if a.cfg.BodyCollisions {
		for _, b := range a.bodies {
			for _, other := range a.bodies {
				if b == other {
					continue
				}
				if err := a.wireSegments(b, other); err != nil {
					return err
				}
			}
		}
	}

	total := 0
	for _, b := range a.bodies {
		for _, p := range b.sys.points {
			total += len(p.constraints) + len(p.collision) + len(p.collisionLS)
		}
		b.sys.Seal()
		a.systems = append(a.systems, b.sys)
	}
	a.constraints = total
	a.sealed = true

	a.logger.Info("arena sealed",
		log.Int("bodies", len(a.bodies)),
		log.Int("constraints", total),
		log.Int("substeps", a.cfg.SubSteps),
	)
	a.publish(EventArenaSealed, ArenaSealedData{Bodies: len(a.bodies), Constraints: total})
	return nil
}

func (a *Arena) wireStatic(b *Body) error {
	for _, p := range b.sys.points {
		if !a.cfg.Bounds.Empty() {
			if err := p.AddConstraint(ListCollision, NewBoundsConstraint(a.cfg.Bounds)); err != nil {
				return err
			}
		}
		for _, c := range a.cfg.Circles {
			if err := p.AddConstraint(ListCollision, NewCircleObstacleConstraint(c)); err != nil {
				return err
			}
		}
		for _, r := range a.cfg.Rects {
			if err := p.AddConstraint(ListCollision, NewRectObstacleConstraint(r)); err != nil {
				return err
			}
		}
	}
	return nil
}

// wireSegments guards every rim point of b against every rim segment of
// other, followed by one rim recovery constraint.
func (a *Arena) wireSegments(b, other *Body) error {
	n := other.RimLen()
	for i := 0; i < b.RimLen(); i++ {
		p := b.RimPoint(i)
		for k := 0; k < n; k++ {
			c := NewSegmentConstraint(other.RimRef(k), other.RimRef((k+1)%n))
			if err := p.AddConstraint(ListCollisionLS, c); err != nil {
				return err
			}
		}
		if err := p.AddConstraint(ListCollisionLS, NewRimConstraint(other)); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the arena by one rendered frame split into SubSteps equal
// sub-steps. Within a sub-step every pass completes for all bodies before
// the next one starts.
func (a *Arena) Step(frameDt float64) error {
	if !a.sealed {
		return ErrNotSealed
	}
	if frameDt <= 0 || math.IsNaN(frameDt) || math.IsInf(frameDt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimestep, frameDt)
	}

	dt := frameDt / float64(a.cfg.SubSteps)
	for i := 0; i < a.cfg.SubSteps; i++ {
		a.subStep(dt)
	}

	for _, b := range a.bodies {
		b.clearDrive()
		if a.cfg.ReportForces {
			b.sys.ClearPointForces()
			b.sys.GatherForces()
		}
	}
	a.frame++
	a.time += frameDt

	if a.cfg.CheckFinite {
		if err := a.checkFinite(); err != nil {
			return err
		}
	}
	if a.bus != nil {
		a.publish(EventFrameStepped, FrameSteppedData{Frame: a.frame, Time: a.time, Checksum: a.Checksum()})
	}
	return nil
}

func (a *Arena) subStep(dt float64) {
	stepSystems(a.systems, dt, func(i int, p *PointMass) {
		a.applyForce(a.bodies[i], p, dt)
	})
}

// applyForce adds gravity, the body's share of its drive and damping to p.
func (a *Arena) applyForce(b *Body, p *PointMass, dt float64) {
	share := b.drive.Scale(1 / float64(b.sys.Len()))
	f := a.cfg.Gravity.Scale(p.mass).Add(share)
	if a.cfg.Damping > 0 {
		f = f.Sub(p.Velocity(dt).Scale(a.cfg.Damping * p.mass))
	}
	p.AddForce(f)
}

func (a *Arena) checkFinite() error {
	for _, b := range a.bodies {
		idx, ok := b.sys.CheckFinite()
		if ok {
			continue
		}
		a.logger.Error("non-finite point position",
			log.String("body", b.Name),
			log.String("id", b.ID.String()),
			log.Int("point", idx),
			log.Uint64("frame", a.frame),
		)
		a.publish(EventPointNonFinite, NonFiniteData{Frame: a.frame, BodyID: b.ID.String(), Point: idx})
		return fmt.Errorf("%w: body %q point %d at frame %d", ErrNonFinite, b.Name, idx, a.frame)
	}
	return nil
}

// Checksum hashes the bit patterns of every current and previous position in
// body and point order. Two arenas built and driven identically produce the
// same checksum on every frame.
func (a *Arena) Checksum() uint64 {
	h := xxhash.New()
	var buf [32]byte
	for _, b := range a.bodies {
		for _, p := range b.sys.points {
			binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(p.pos.X))
			binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.pos.Y))
			binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(p.prev.X))
			binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(p.prev.Y))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// DebugRender draws the static geometry once and then every structural
// constraint of every point.
func (a *Arena) DebugRender(sink LineSink) {
	if !a.cfg.Bounds.Empty() {
		drawRect(sink, a.cfg.Bounds, ColorStatic)
	}
	for _, c := range a.cfg.Circles {
		drawCircle(sink, c, ColorStatic)
	}
	for _, r := range a.cfg.Rects {
		drawRect(sink, r, ColorStatic)
	}
	for _, b := range a.bodies {
		for _, p := range b.sys.points {
			for _, c := range p.constraints {
				c.DebugRender(sink, p, DefaultColor(c))
			}
		}
	}
}

func (a *Arena) publish(eventType string, data any) {
	if a.bus == nil {
		return
	}
	if err := a.bus.Publish(bus.NewEvent(eventType, EventSource, data)); err != nil {
		a.logger.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
