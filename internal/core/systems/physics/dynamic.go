package physics

import "fmt"

// Mode selects how a Dynamic constraint behaves.
type Mode uint8

const (
	ModeFullyRigid Mode = iota
	ModeSemiRigid
	ModeOff
)

func (m Mode) String() string {
	switch m {
	case ModeFullyRigid:
		return "fully_rigid"
	case ModeSemiRigid:
		return "semi_rigid"
	case ModeOff:
		return "off"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fully_rigid", "rigid":
		return ModeFullyRigid, nil
	case "semi_rigid", "semi", "spring":
		return ModeSemiRigid, nil
	case "off", "none":
		return ModeOff, nil
	default:
		return ModeOff, fmt.Errorf("physics: unknown constraint mode %q", s)
	}
}

// Tunable is a parameter with the value fixed at construction and the value in
// effect. Overrides are always undone by Reset.
type Tunable struct {
	Original float64
	Current  float64
}

func NewTunable(v float64) Tunable { return Tunable{Original: v, Current: v} }

func (t *Tunable) Override(v float64) { t.Current = v }
func (t *Tunable) Reset()             { t.Current = t.Original }
func (t Tunable) Overridden() bool    { return t.Current != t.Original }

// Dynamic behaves like Rigid or SemiRigid depending on its mode, which can be
// changed at any time. Every length and the force coefficient can be
// temporarily overridden and restored.
type Dynamic struct {
	other PointRef
	mode  Mode

	min   Tunable
	rest  Tunable
	max   Tunable
	force Tunable
}

func NewDynamic(other PointRef, mode Mode, min, rest, max, force float64) *Dynamic {
	return &Dynamic{
		other: other,
		mode:  mode,
		min:   NewTunable(min),
		rest:  NewTunable(rest),
		max:   NewTunable(max),
		force: NewTunable(force),
	}
}

// LinkDynamic joins a and b with a pair of Dynamic halves.
func LinkDynamic(a, b *PointMass, mode Mode, min, rest, max, force float64) (*Dynamic, *Dynamic, error) {
	return Link(a, b, func(other PointRef) *Dynamic { return NewDynamic(other, mode, min, rest, max, force) })
}

func (c *Dynamic) Other() PointRef     { return c.other }
func (c *Dynamic) Mode() Mode          { return c.mode }
func (c *Dynamic) SetMode(m Mode)      { c.mode = m }
func (c *Dynamic) MinLength() Tunable  { return c.min }
func (c *Dynamic) RestLength() Tunable { return c.rest }
func (c *Dynamic) MaxLength() Tunable  { return c.max }
func (c *Dynamic) Force() Tunable      { return c.force }

func (c *Dynamic) UseTempMinLength(v float64)  { c.min.Override(v) }
func (c *Dynamic) UseTempRestLength(v float64) { c.rest.Override(v) }
func (c *Dynamic) UseTempMaxLength(v float64)  { c.max.Override(v) }
func (c *Dynamic) UseTempForce(v float64)      { c.force.Override(v) }

func (c *Dynamic) ResetMinLength()  { c.min.Reset() }
func (c *Dynamic) ResetRestLength() { c.rest.Reset() }
func (c *Dynamic) ResetMaxLength()  { c.max.Reset() }
func (c *Dynamic) ResetForce()      { c.force.Reset() }

// ResetAll restores every overridden parameter. The mode is left as is.
func (c *Dynamic) ResetAll() {
	c.min.Reset()
	c.rest.Reset()
	c.max.Reset()
	c.force.Reset()
}

func (c *Dynamic) Satisfy(self *PointMass) {
	if c.mode == ModeOff {
		return
	}
	other := c.other.Point()
	if other == nil {
		return
	}
	switch c.mode {
	case ModeFullyRigid:
		relax(self, other, c.rest.Current)
	case ModeSemiRigid:
		if target, ok := clampedTarget(self, other, c.min.Current, c.max.Current); ok {
			relax(self, other, target)
		}
	}
}

func (c *Dynamic) GetForce(self *PointMass) Vec2 {
	if c.mode != ModeSemiRigid {
		return Vec2{}
	}
	other := c.other.Point()
	if other == nil {
		return Vec2{}
	}
	return springForce(self, other, c.rest.Current, c.force.Current)
}

func (c *Dynamic) DebugRender(sink LineSink, self *PointMass, color Color) {
	if c.mode == ModeOff {
		return
	}
	if other := c.other.Point(); other != nil {
		sink.DrawLine(self.pos, other.pos, color)
	}
}
