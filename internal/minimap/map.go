// Package minimap draws a dungeon grid in a terminal.
package minimap

import (
	"fmt"
	"strings"

	"dungeon-viewer/internal/world"

	"github.com/gdamore/tcell/v2"
)

// Canvas is the part of tcell.Screen the map draws on
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

var (
	tileStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	emptyStyle  = tcell.StyleDefault
	cursorStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Reverse(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Map shows one dungeon with a movable cursor. Screen x is tile x and
// screen y is tile z, so north (-z) is up.
type Map struct {
	grid     *world.Grid
	dungeon  *world.Dungeon
	passages map[Tile]Passage

	CursorX, CursorZ int

	// Top-left tile on screen
	scrollX, scrollZ int
}

func New(g *world.Grid, d *world.Dungeon) *Map {
	return &Map{
		grid:     g,
		dungeon:  d,
		passages: Passages(d),
	}
}

// Move shifts the cursor, clamped to the grid
func (m *Map) Move(dx, dz int) {
	m.CursorX = clamp(m.CursorX+dx, 0, m.grid.Width()-1)
	m.CursorZ = clamp(m.CursorZ+dz, 0, m.grid.Length()-1)
}

// HandleKey applies a key press and reports whether the map should close
func (m *Map) HandleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		m.Move(0, -1)
	case tcell.KeyDown:
		m.Move(0, 1)
	case tcell.KeyLeft:
		m.Move(-1, 0)
	case tcell.KeyRight:
		m.Move(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'w':
			m.Move(0, -1)
		case 's':
			m.Move(0, 1)
		case 'a':
			m.Move(-1, 0)
		case 'd':
			m.Move(1, 0)
		}
	}
	return false
}

// Draw renders the visible part of the grid and a status line on the last row
func (m *Map) Draw(c Canvas) {
	width, height := c.Size()
	rows := height - 1
	if width <= 0 || rows <= 0 {
		return
	}
	m.follow(width, rows)

	for sy := 0; sy < rows; sy++ {
		for sx := 0; sx < width; sx++ {
			x, z := m.scrollX+sx, m.scrollZ+sy
			r, style := m.cell(x, z)
			c.SetContent(sx, sy, r, nil, style)
		}
	}

	status := []rune(m.Status())
	for sx := 0; sx < width; sx++ {
		r := ' '
		if sx < len(status) {
			r = status[sx]
		}
		c.SetContent(sx, height-1, r, nil, statusStyle)
	}
}

func (m *Map) cell(x, z int) (rune, tcell.Style) {
	if !m.grid.InBounds(x, z) {
		return ' ', emptyStyle
	}
	r, style := EmptyGlyph, emptyStyle
	if p, ok := m.passages[Tile{x, z}]; ok {
		r, style = Glyph(p), tileStyle
	}
	if x == m.CursorX && z == m.CursorZ {
		style = cursorStyle
	}
	return r, style
}

// follow scrolls so the cursor stays visible
func (m *Map) follow(width, rows int) {
	if m.CursorX < m.scrollX {
		m.scrollX = m.CursorX
	}
	if m.CursorX >= m.scrollX+width {
		m.scrollX = m.CursorX - width + 1
	}
	if m.CursorZ < m.scrollZ {
		m.scrollZ = m.CursorZ
	}
	if m.CursorZ >= m.scrollZ+rows {
		m.scrollZ = m.CursorZ - rows + 1
	}
}

// Status describes the tile under the cursor
func (m *Map) Status() string {
	x, z := m.CursorX, m.CursorZ
	faces := m.dungeon.TileSurfaces(x, z)
	if len(faces) == 0 {
		return fmt.Sprintf("(%d,%d) empty", x, z)
	}
	names := make([]string, len(faces))
	for i, o := range faces {
		names[i] = o.String()
	}
	return fmt.Sprintf("(%d,%d) %d faces: %s", x, z, len(faces), strings.Join(names, " "))
}

// Summary is the one-line description printed before the map opens
func Summary(g *world.Grid, d *world.Dungeon) string {
	counts := d.Counts()
	parts := make([]string, 0, len(counts))
	for _, o := range world.Orientations() {
		parts = append(parts, fmt.Sprintf("%s=%d", o, counts[o]))
	}
	return fmt.Sprintf("%dx%d grid, %d occupied, %d surfaces (%s), fingerprint %016x",
		g.Width(), g.Length(), g.OccupiedCount(), d.Len(), strings.Join(parts, " "), g.Fingerprint())
}

// Render draws the whole grid as text, one row per z, for non-interactive use
func Render(g *world.Grid, d *world.Dungeon) string {
	passages := Passages(d)
	var b strings.Builder
	for z := 0; z < g.Length(); z++ {
		if z > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.Width(); x++ {
			if p, ok := passages[Tile{x, z}]; ok {
				b.WriteRune(Glyph(p))
			} else {
				b.WriteRune(EmptyGlyph)
			}
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
