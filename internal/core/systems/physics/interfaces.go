package physics

// Constraint is one directional half of a positional relationship owned by a point.
// Satisfy and GetForce receive the point whose list holds the constraint.
type Constraint interface {
	// Satisfy applies a single relaxation pass. It only moves points through MoveTo.
	Satisfy(self *PointMass)
	// GetForce reports the force this constraint exerts on self. Holonomic
	// constraints return the zero vector.
	GetForce(self *PointMass) Vec2
	// DebugRender draws the constraint into an immediate-mode line sink.
	DebugRender(sink LineSink, self *PointMass, color Color)
}

// LineSink receives debug line segments in world coordinates.
type LineSink interface {
	DrawLine(a, b Vec2, color Color)
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	ColorRigid     = Color{R: 230, G: 230, B: 230, A: 255}
	ColorSpring    = Color{R: 90, G: 200, B: 90, A: 255}
	ColorDynamic   = Color{R: 240, G: 180, B: 40, A: 255}
	ColorCollision = Color{R: 220, G: 60, B: 60, A: 255}
	ColorStatic    = Color{R: 80, G: 120, B: 240, A: 255}
)

// ListKind selects one of the three constraint lists of a point.
type ListKind uint8

const (
	// ListStructural holds the body-shape constraints.
	ListStructural ListKind = iota
	// ListCollision holds point-vs-static-geometry constraints.
	ListCollision
	// ListCollisionLS holds point-vs-line-segment constraints.
	ListCollisionLS
)

func (k ListKind) String() string {
	switch k {
	case ListStructural:
		return "structural"
	case ListCollision:
		return "collision"
	case ListCollisionLS:
		return "collision_ls"
	default:
		return "unknown"
	}
}
