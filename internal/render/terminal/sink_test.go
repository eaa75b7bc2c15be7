package terminal

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/softbody/internal/core/systems/physics"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func glyphAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestToCell(t *testing.T) {
	sink := NewSink(newScreen(t), physics.Rect{W: 800, H: 600})

	x, y := sink.ToCell(physics.V(0, 0))
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = sink.ToCell(physics.V(400, 300))
	assert.Equal(t, 40, x)
	assert.Equal(t, 12, y)

	x, y = sink.ToCell(physics.V(-10, 700))
	assert.Equal(t, -1, x)
	assert.Equal(t, 28, y)
}

func TestDrawHorizontalLine(t *testing.T) {
	screen := newScreen(t)
	sink := NewSink(screen, physics.Rect{W: 800, H: 600})

	sink.DrawLine(physics.V(0, 300), physics.V(795, 300), physics.Color{R: 255, A: 255})
	for x := 0; x < 80; x++ {
		assert.Equal(t, DefaultGlyph, glyphAt(screen, x, 12), "cell %d", x)
	}
	assert.NotEqual(t, DefaultGlyph, glyphAt(screen, 10, 11))

	_, _, style, _ := screen.GetContent(5, 12)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
}

func TestDrawDiagonalLineIsContinuous(t *testing.T) {
	screen := newScreen(t)
	sink := NewSink(screen, physics.Rect{W: 80, H: 24})
	sink.SetGlyph('#')

	sink.DrawLine(physics.V(2, 2), physics.V(12, 7), physics.ColorRigid)
	count := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if glyphAt(screen, x, y) == '#' {
				count++
			}
		}
	}
	assert.Equal(t, 11, count, "one cell per column along the major axis")
	assert.Equal(t, '#', glyphAt(screen, 2, 2))
	assert.Equal(t, '#', glyphAt(screen, 12, 7))
}

func TestDrawLineClipsAndSkipsNonFinite(t *testing.T) {
	screen := newScreen(t)
	sink := NewSink(screen, physics.Rect{W: 80, H: 24})

	assert.NotPanics(t, func() {
		sink.DrawLine(physics.V(-20, 5), physics.V(100, 5), physics.ColorSpring)
		sink.DrawLine(physics.V(0, 0), physics.V(1e12, 1e12), physics.ColorSpring)
	})
	assert.Equal(t, DefaultGlyph, glyphAt(screen, 0, 5))
	assert.Equal(t, DefaultGlyph, glyphAt(screen, 79, 5))

	sink.SetGlyph('x')
	sink.DrawLine(physics.V(math.NaN(), 0), physics.V(3, 3), physics.ColorSpring)
	assert.NotEqual(t, 'x', glyphAt(screen, 3, 3))
}

func TestArenaDebugRenderDrawsBounds(t *testing.T) {
	screen := newScreen(t)
	cfg := physics.DefaultArenaConfig()
	arena, err := physics.NewArena(cfg)
	require.NoError(t, err)
	require.NoError(t, arena.Seal())

	sink := NewSink(screen, physics.Rect{X: -10, Y: -10, W: 820, H: 620})
	arena.DebugRender(sink)
	left, top := sink.ToCell(physics.V(0, 0))
	assert.Equal(t, DefaultGlyph, glyphAt(screen, left, top))
	assert.Equal(t, DefaultGlyph, glyphAt(screen, 40, top))
}
