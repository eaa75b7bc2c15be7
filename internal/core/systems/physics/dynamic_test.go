package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicOffIsInert(t *testing.T) {
	_, a, b := newPair(t, V(0, 0), V(100, 0))
	ab, _, err := LinkDynamic(a, b, ModeOff, 5, 20, 50, 1)
	require.NoError(t, err)

	ab.Satisfy(a)
	assert.Equal(t, V(0, 0), a.Position())
	assert.Equal(t, V(100, 0), b.Position())
	assert.Equal(t, Vec2{}, ab.GetForce(a))

	rec := &lineRecorder{}
	ab.DebugRender(rec, a, ColorDynamic)
	assert.Empty(t, rec.lines)
}

func TestDynamicFullyRigidUsesRestLength(t *testing.T) {
	_, a, b := newPair(t, V(0, 0), V(4, 0))
	ab, _, err := LinkDynamic(a, b, ModeFullyRigid, 5, 10, 50, 1)
	require.NoError(t, err)

	ab.Satisfy(a)
	assertVec(t, V(-3, 0), a.Position(), 1e-12)
	assertVec(t, V(7, 0), b.Position(), 1e-12)
	assert.Equal(t, Vec2{}, ab.GetForce(a))
}

func TestDynamicSemiRigidMatchesSemiRigid(t *testing.T) {
	for _, start := range []float64{2, 20, 100} {
		_, a1, b1 := newPair(t, V(0, 0), V(start, 0))
		_, a2, b2 := newPair(t, V(0, 0), V(start, 0))
		dyn, _, err := LinkDynamic(a1, b1, ModeSemiRigid, 5, 20, 50, 1)
		require.NoError(t, err)
		semi, _, err := LinkSemiRigid(a2, b2, 5, 20, 50, 1)
		require.NoError(t, err)

		dyn.Satisfy(a1)
		semi.Satisfy(a2)
		assert.Equal(t, a2.Position(), a1.Position())
		assert.Equal(t, b2.Position(), b1.Position())
		assert.Equal(t, semi.GetForce(a2), dyn.GetForce(a1))
	}
}

func TestDynamicModeSwitchAtRuntime(t *testing.T) {
	_, a, b := newPair(t, V(0, 0), V(30, 0))
	ab, _, err := LinkDynamic(a, b, ModeSemiRigid, 5, 10, 50, 1)
	require.NoError(t, err)

	ab.Satisfy(a)
	assert.InDelta(t, 30, a.Position().Distance(b.Position()), 1e-12)

	ab.SetMode(ModeFullyRigid)
	assert.Equal(t, ModeFullyRigid, ab.Mode())
	ab.Satisfy(a)
	assert.InDelta(t, 10, a.Position().Distance(b.Position()), 1e-9)
}

func TestDynamicTempOverrides(t *testing.T) {
	_, a, b := newPair(t, V(0, 0), V(100, 0))
	ab, _, err := LinkDynamic(a, b, ModeSemiRigid, 5, 20, 50, 1)
	require.NoError(t, err)

	ab.UseTempMaxLength(80)
	ab.Satisfy(a)
	assert.InDelta(t, 80, a.Position().Distance(b.Position()), 1e-9)

	ab.ResetMaxLength()
	ab.Satisfy(a)
	assert.InDelta(t, 50, a.Position().Distance(b.Position()), 1e-9)
}

func TestDynamicTempResetRoundTrip(t *testing.T) {
	_, a, b := newPair(t, V(0, 0), V(10, 0))
	ab, _, err := LinkDynamic(a, b, ModeSemiRigid, 5, 20, 50, 1.5)
	require.NoError(t, err)

	ab.UseTempRestLength(33.3)
	assert.Equal(t, 33.3, ab.RestLength().Current)
	assert.True(t, ab.RestLength().Overridden())
	ab.ResetRestLength()
	assert.Equal(t, Tunable{Original: 20, Current: 20}, ab.RestLength())

	ab.UseTempMinLength(1)
	ab.ResetMinLength()
	assert.Equal(t, 5.0, ab.MinLength().Current)

	ab.UseTempForce(9)
	ab.ResetForce()
	assert.Equal(t, 1.5, ab.Force().Current)

	ab.UseTempMinLength(0.1)
	ab.UseTempRestLength(0.2)
	ab.UseTempMaxLength(0.3)
	ab.UseTempForce(0.4)
	ab.ResetAll()
	assert.Equal(t, NewTunable(5), ab.MinLength())
	assert.Equal(t, NewTunable(20), ab.RestLength())
	assert.Equal(t, NewTunable(50), ab.MaxLength())
	assert.Equal(t, NewTunable(1.5), ab.Force())
}

func TestDynamicSpringForceUsesCurrentValues(t *testing.T) {
	_, a, b := newPair(t, V(30, 0), V(0, 0))
	ab, _, err := LinkDynamic(a, b, ModeSemiRigid, 5, 20, 50, 1)
	require.NoError(t, err)

	assertVec(t, V(-10, 0), ab.GetForce(a), 1e-12)

	ab.UseTempRestLength(25)
	ab.UseTempForce(2)
	assertVec(t, V(-10, 0), ab.GetForce(a), 1e-12)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeFullyRigid, ModeSemiRigid, ModeOff} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("wobbly")
	assert.Error(t, err)
	assert.Equal(t, "mode(7)", Mode(7).String())
}
