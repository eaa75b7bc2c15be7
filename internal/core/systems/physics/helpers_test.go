package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordedLine struct {
	A, B  Vec2
	Color Color
}

type lineRecorder struct {
	lines []recordedLine
}

func (r *lineRecorder) DrawLine(a, b Vec2, color Color) {
	r.lines = append(r.lines, recordedLine{A: a, B: b, Color: color})
}

// newPair creates two points in a fresh system.
func newPair(t *testing.T, a, b Vec2) (*System, *PointMass, *PointMass) {
	t.Helper()
	s := NewSystem(2)
	pa, err := s.CreatePoint(a)
	require.NoError(t, err)
	pb, err := s.CreatePoint(b)
	require.NoError(t, err)
	return s, pa, pb
}

func assertVec(t *testing.T, want, got Vec2, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta, "x of %v", got)
	require.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
}
