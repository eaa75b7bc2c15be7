// Package terminal draws arena debug geometry into a tcell screen.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/softbody/internal/core/systems/physics"
)

// DefaultGlyph is the rune plotted for every line cell.
const DefaultGlyph = '•'

// Lines spanning more than maxSpan screens are dropped.
const maxSpan = 4

// Sink is a physics.LineSink that rasterizes lines onto a screen. The view
// rectangle in world units is stretched over the whole screen.
type Sink struct {
	screen tcell.Screen
	view   physics.Rect
	glyph  rune
}

var _ physics.LineSink = (*Sink)(nil)

func NewSink(screen tcell.Screen, view physics.Rect) *Sink {
	return &Sink{screen: screen, view: view, glyph: DefaultGlyph}
}

func (s *Sink) SetGlyph(r rune)           { s.glyph = r }
func (s *Sink) SetView(view physics.Rect) { s.view = view }
func (s *Sink) View() physics.Rect        { return s.view }

// ToCell maps a world position to a screen cell. The result may be off screen.
func (s *Sink) ToCell(p physics.Vec2) (int, int) {
	w, h := s.screen.Size()
	if s.view.Empty() {
		return int(math.Floor(p.X)), int(math.Floor(p.Y))
	}
	x := (p.X - s.view.X) / s.view.W * float64(w)
	y := (p.Y - s.view.Y) / s.view.H * float64(h)
	return int(math.Floor(x)), int(math.Floor(y))
}

func (s *Sink) DrawLine(a, b physics.Vec2, color physics.Color) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(color.R), int32(color.G), int32(color.B)))
	x0, y0 := s.ToCell(a)
	x1, y1 := s.ToCell(b)
	w, h := s.screen.Size()
	if abs(x1-x0)+abs(y1-y0) > maxSpan*(w+h) {
		return
	}

	// Bresenham
	dx, sx := abs(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -abs(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			s.screen.SetContent(x0, y0, s.glyph, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
