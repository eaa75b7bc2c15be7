package physics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a constraint that only logs when it is satisfied.
type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Satisfy(*PointMass)                      { *r.log = append(*r.log, r.name) }
func (r recorder) GetForce(*PointMass) Vec2                { return Vec2{} }
func (r recorder) DebugRender(LineSink, *PointMass, Color) {}

func TestSystemStepPassOrder(t *testing.T) {
	var calls []string
	s, a, b := newPair(t, V(0, 0), V(1, 0))
	for i, p := range []*PointMass{a, b} {
		require.NoError(t, p.AddConstraint(ListStructural, recorder{fmt.Sprintf("s%d", i), &calls}))
		require.NoError(t, p.AddConstraint(ListCollision, recorder{fmt.Sprintf("c%d", i), &calls}))
		require.NoError(t, p.AddConstraint(ListCollisionLS, recorder{fmt.Sprintf("l%d", i), &calls}))
	}
	s.Seal()

	err := s.Step(0.1, func(p *PointMass) {
		calls = append(calls, fmt.Sprintf("f%d", p.Index()))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"f0", "f1", "s0", "s1", "c0", "c1", "l0", "l1"}, calls)
}

func TestStepSystemsFinishesEachPassAcrossSystems(t *testing.T) {
	var calls []string
	var systems []*System
	for i := 0; i < 2; i++ {
		s, a, _ := newPair(t, V(0, 0), V(1, 0))
		require.NoError(t, a.AddConstraint(ListStructural, recorder{fmt.Sprintf("s%d", i), &calls}))
		require.NoError(t, a.AddConstraint(ListCollision, recorder{fmt.Sprintf("c%d", i), &calls}))
		require.NoError(t, a.AddConstraint(ListCollisionLS, recorder{fmt.Sprintf("l%d", i), &calls}))
		s.Seal()
		systems = append(systems, s)
	}

	stepSystems(systems, 0.1, func(sys int, p *PointMass) {
		calls = append(calls, fmt.Sprintf("f%d.%d", sys, p.Index()))
	})
	assert.Equal(t, []string{
		"f0.0", "f0.1", "f1.0", "f1.1",
		"s0", "s1", "c0", "c1", "l0", "l1",
	}, calls)
}

func TestSystemStepAppliesForcesAfterClearing(t *testing.T) {
	s, a, _ := newPair(t, V(0, 0), V(5, 0))
	a.SetForce(V(1000, 1000))
	s.Seal()

	require.NoError(t, s.Step(0.5, func(p *PointMass) { p.AddForce(V(0, 4)) }))
	assertVec(t, V(0, 1), a.Position(), 1e-12)
}

func TestSystemSetupPhase(t *testing.T) {
	s := NewSystem(1)
	require.ErrorIs(t, s.Step(0.1, nil), ErrNotSealed)

	p, err := s.CreatePoint(V(1, 2))
	require.NoError(t, err)
	assert.Equal(t, DefaultMass, p.Mass())
	assert.Equal(t, s, p.Owner())
	assert.ErrorIs(t, s.Add(p), ErrPointOwned)

	s.Seal()
	s.Seal()
	assert.True(t, s.Sealed())

	_, err = s.CreatePoint(V(0, 0))
	assert.ErrorIs(t, err, ErrSealed)
	assert.ErrorIs(t, p.AddConstraint(ListStructural, NewRigid(p.Ref(), 1)), ErrSealed)
	assert.ErrorIs(t, s.Step(0, nil), ErrInvalidTimestep)
	assert.Equal(t, 1, s.Len())
}

func TestSystemIndicesAreStable(t *testing.T) {
	s := NewSystem(0)
	for i := 0; i < 10; i++ {
		p, err := s.CreatePoint(V(float64(i), 0), float64(i+1))
		require.NoError(t, err)
		assert.Equal(t, i, p.Index())
	}
	for i, p := range s.Points() {
		assert.Same(t, p, s.Point(i))
		assert.Same(t, p, s.Ref(i).Point())
	}
	assert.Nil(t, s.Point(-1))
	assert.Nil(t, s.Point(10))
	assert.False(t, s.Ref(10).Valid())
}

func TestSystemCheckFinite(t *testing.T) {
	s, _, b := newPair(t, V(0, 0), V(1, 0))
	idx, ok := s.CheckFinite()
	assert.True(t, ok)
	assert.Equal(t, -1, idx)

	b.MoveTo(V(math.Inf(1), 0))
	idx, ok = s.CheckFinite()
	assert.False(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSystemCentroid(t *testing.T) {
	assert.Equal(t, Vec2{}, NewSystem(0).Centroid())

	s, _, _ := newPair(t, V(0, 0), V(4, 2))
	_, err := s.CreatePoint(V(2, 7))
	require.NoError(t, err)
	assertVec(t, V(2, 3), s.Centroid(), 1e-12)
}

func TestSystemDebugRender(t *testing.T) {
	s, a, b := newPair(t, V(0, 0), V(3, 0))
	_, _, err := LinkRigid(a, b, 3)
	require.NoError(t, err)
	require.NoError(t, a.AddConstraint(ListCollision, NewBoundsConstraint(Rect{W: 10, H: 10})))

	rec := &lineRecorder{}
	s.DebugRender(rec)
	require.Len(t, rec.lines, 6)
	assert.Equal(t, ColorRigid, rec.lines[0].Color)
	for _, l := range rec.lines[1:5] {
		assert.Equal(t, ColorCollision, l.Color)
	}
	assert.Equal(t, ColorRigid, rec.lines[5].Color)
}
