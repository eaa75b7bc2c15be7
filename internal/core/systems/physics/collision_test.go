package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsConstraintClamps(t *testing.T) {
	c := NewBoundsConstraint(Rect{W: 100, H: 50})
	p, err := NewPointMass(V(10, 10), 1)
	require.NoError(t, err)

	c.Satisfy(p)
	assert.Equal(t, V(10, 10), p.Position())

	p.MoveTo(V(120, 60))
	c.Satisfy(p)
	assert.Equal(t, V(100, 50), p.Position())
	assert.Equal(t, V(10, 10), p.PreviousPosition(), "previous position is kept")
	assert.Equal(t, Vec2{}, c.GetForce(p))
}

func TestCircleObstaclePushesOut(t *testing.T) {
	c := NewCircleObstacleConstraint(Circle{Center: V(0, 0), Radius: 10})
	p, err := NewPointMass(V(0, -4), 1)
	require.NoError(t, err)

	c.Satisfy(p)
	assertVec(t, V(0, -10), p.Position(), 1e-12)

	p.MoveTo(V(0, -10))
	c.Satisfy(p)
	assertVec(t, V(0, -10), p.Position(), 1e-12)

	rec := &lineRecorder{}
	c.DebugRender(rec, p, ColorStatic)
	assert.Len(t, rec.lines, circleDebugSegments)
}

func TestRectObstaclePushesThroughNearestEdge(t *testing.T) {
	c := NewRectObstacleConstraint(Rect{X: 0, Y: 0, W: 10, H: 10})
	p, err := NewPointMass(V(9, 4), 1)
	require.NoError(t, err)

	c.Satisfy(p)
	assert.Equal(t, V(10, 4), p.Position())

	p.MoveTo(V(4, 1))
	c.Satisfy(p)
	assert.Equal(t, V(4, 0), p.Position())

	p.MoveTo(V(20, 20))
	c.Satisfy(p)
	assert.Equal(t, V(20, 20), p.Position())
}

func TestSegmentConstraintStopsCrossing(t *testing.T) {
	mover := NewSystem(1)
	p, err := mover.CreatePoint(V(-1, 0))
	require.NoError(t, err)
	p.MoveTo(V(1, 0))

	_, a, b := newPair(t, V(0, -5), V(0, 5))
	c := NewSegmentConstraint(a.Ref(), b.Ref())
	c.Satisfy(p)

	// Point and segment each take half of the 1.05 correction.
	assertVec(t, V(0.475, 0), p.Position(), 1e-12)
	assertVec(t, V(0.525, -5), a.Position(), 1e-12)
	assertVec(t, V(0.525, 5), b.Position(), 1e-12)
	assert.InDelta(t, DefaultSkin, a.Position().X-p.Position().X, 1e-12)
}

func TestSegmentConstraintCatchesSweepingSegment(t *testing.T) {
	rest := NewSystem(1)
	p, err := rest.CreatePoint(V(0, 0))
	require.NoError(t, err)

	_, a, b := newPair(t, V(-1, -5), V(-1, 5))
	a.MoveTo(V(1, -5))
	b.MoveTo(V(1, 5))
	NewSegmentConstraint(a.Ref(), b.Ref()).Satisfy(p)

	assertVec(t, V(0.525, 0), p.Position(), 1e-12)
	assertVec(t, V(0.475, -5), a.Position(), 1e-12)
	assertVec(t, V(0.475, 5), b.Position(), 1e-12)
	assert.InDelta(t, DefaultSkin, p.Position().X-a.Position().X, 1e-12, "back on its original side")
}

func TestSegmentConstraintIgnoresMissedSegments(t *testing.T) {
	mover := NewSystem(1)
	p, err := mover.CreatePoint(V(-1, 10))
	require.NoError(t, err)
	p.MoveTo(V(1, 10))

	_, a, b := newPair(t, V(0, -5), V(0, 5))
	c := NewSegmentConstraint(a.Ref(), b.Ref())
	c.Satisfy(p)

	assert.Equal(t, V(1, 10), p.Position(), "crossed the line beyond the endpoint")
	assert.Equal(t, V(0, -5), a.Position())

	q, err := mover.CreatePoint(V(-1, 0))
	require.NoError(t, err)
	q.MoveTo(V(-0.5, 0))
	c.Satisfy(q)
	assert.Equal(t, V(-0.5, 0), q.Position(), "stayed on its side")

	// A point never collides with a segment it is an endpoint of.
	a.MoveTo(V(-1, 0))
	NewSegmentConstraint(a.Ref(), b.Ref()).Satisfy(a)
	assert.Equal(t, V(-1, 0), a.Position())
}

func TestSegmentConstraintShortMoveKeepsSkin(t *testing.T) {
	mover := NewSystem(1)
	p, err := mover.CreatePoint(V(-0.01, 0))
	require.NoError(t, err)
	p.MoveTo(V(0.01, 0))

	_, a, b := newPair(t, V(0, -5), V(0, 5))
	NewSegmentConstraint(a.Ref(), b.Ref()).Satisfy(p)

	assertVec(t, V(-0.02, 0), p.Position(), 1e-12)
	assertVec(t, V(0.03, -5), a.Position(), 1e-12)
}

func TestRimConstraintRecoversPointInside(t *testing.T) {
	ring, err := NewRing(DefaultRingSpec("ring", V(0, 0), 10))
	require.NoError(t, err)
	assert.Positive(t, ring.RimArea())

	other := NewSystem(2)
	p, err := other.CreatePoint(V(9.5, 0.5))
	require.NoError(t, err)
	outside, err := other.CreatePoint(V(20, 0))
	require.NoError(t, err)

	require.True(t, ring.RimContains(p.Position()))
	edge, ok := ring.NearestRimEdge(p.Position())
	require.True(t, ok)
	assert.Equal(t, 0, edge)

	c := NewRimConstraint(ring)
	assert.Same(t, ring, c.Body())
	c.Satisfy(p)
	assert.False(t, ring.RimContains(p.Position()))
	assert.Less(t, ring.RimPoint(0).Position().X, 10.0, "the edge takes half of the correction")

	a, b := ring.RimPoint(0).Position(), ring.RimPoint(1).Position()
	seg := b.Sub(a)
	dist := seg.Cross(p.Position().Sub(a)) / seg.Length()
	assert.InDelta(t, -DefaultSkin, dist, 1e-9, "skin outside the edge")

	c.Satisfy(outside)
	assert.Equal(t, V(20, 0), outside.Position())

	hub := ring.Hub().Position()
	c.Satisfy(ring.Hub())
	assert.Equal(t, hub, ring.Hub().Position(), "own points are ignored")
}

func TestSegmentConstraintDebugRender(t *testing.T) {
	_, a, b := newPair(t, V(0, 0), V(3, 4))
	c := NewSegmentConstraint(a.Ref(), b.Ref())
	ra, rb := c.Endpoints()
	assert.Same(t, a, ra.Point())
	assert.Same(t, b, rb.Point())

	rec := &lineRecorder{}
	c.DebugRender(rec, nil, ColorCollision)
	require.Len(t, rec.lines, 1)
	assert.Equal(t, recordedLine{A: V(0, 0), B: V(3, 4), Color: ColorCollision}, rec.lines[0])

	rec = &lineRecorder{}
	NewSegmentConstraint(PointRef{}, b.Ref()).DebugRender(rec, nil, ColorCollision)
	assert.Empty(t, rec.lines)
}
