package minimap

import (
	"context"
	"strings"
	"testing"

	"dungeon-viewer/internal/world"

	"github.com/gdamore/tcell/v2"
)

type fakeCanvas struct {
	w, h  int
	cells map[[2]int]rune
	style map[[2]int]tcell.Style
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: map[[2]int]rune{}, style: map[[2]int]tcell.Style{}}
}

func (f *fakeCanvas) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = primary
	f.style[[2]int{x, y}] = style
}

func (f *fakeCanvas) Size() (int, int) { return f.w, f.h }

func (f *fakeCanvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < f.w; x++ {
		b.WriteRune(f.cells[[2]int{x, y}])
	}
	return b.String()
}

func build(t *testing.T, rows ...string) (*world.Grid, *world.Dungeon) {
	t.Helper()
	g, err := world.ParseGrid(rows...)
	if err != nil {
		t.Fatal(err)
	}
	return g, world.Build(context.Background(), g)
}

func TestGlyphTable(t *testing.T) {
	seen := map[rune]bool{}
	for p := Passage(0); p < 16; p++ {
		r := Glyph(p)
		if r == 0 {
			t.Fatalf("no glyph for passage %04b", p)
		}
		if seen[r] {
			t.Fatalf("glyph %q used twice", r)
		}
		seen[r] = true
	}
}

func TestPassages(t *testing.T) {
	// Column x=0 is "##", column x=1 is "#."
	_, d := build(t, "##", "#.")
	p := Passages(d)

	tests := []struct {
		tile Tile
		want Passage
	}{
		{Tile{0, 0}, East | South},
		{Tile{1, 0}, West},
		{Tile{0, 1}, North},
	}
	for _, tt := range tests {
		if got := p[tt.tile]; got != tt.want {
			t.Errorf("tile %v: passage %04b, want %04b", tt.tile, got, tt.want)
		}
	}
	if _, ok := p[Tile{1, 1}]; ok {
		t.Error("empty tile should have no passages")
	}
}

func TestRender(t *testing.T) {
	g, d := build(t, "##", "#.")
	if got, want := Render(g, d), "┌╴\n╵ "; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	g, d = build(t, "#")
	if got := Render(g, d); got != "▪" {
		t.Fatalf("isolated tile = %q", got)
	}
}

func TestDrawAndStatus(t *testing.T) {
	g, d := build(t, "##", "#.")
	m := New(g, d)
	c := newFakeCanvas(4, 3)
	m.Draw(c)

	if got := c.row(0); got != "┌╴  " {
		t.Fatalf("row 0 = %q", got)
	}
	if c.style[[2]int{0, 0}] != cursorStyle {
		t.Fatal("cursor cell not highlighted")
	}
	if got := c.row(2); !strings.HasPrefix(got, "(0,0)") {
		t.Fatalf("status row = %q", got)
	}

	m.Move(1, 1)
	if got := m.Status(); got != "(1,1) empty" {
		t.Fatalf("Status = %q", got)
	}
	m.Move(-1, 0)
	if got, want := m.Status(), "(0,1) 5 faces: left right back top bottom"; got != want {
		t.Fatalf("Status = %q, want %q", got, want)
	}
}

func TestMoveClamps(t *testing.T) {
	g, d := build(t, "##", "#.")
	m := New(g, d)
	m.Move(-5, -5)
	if m.CursorX != 0 || m.CursorZ != 0 {
		t.Fatalf("cursor = (%d,%d)", m.CursorX, m.CursorZ)
	}
	m.Move(10, 10)
	if m.CursorX != 1 || m.CursorZ != 1 {
		t.Fatalf("cursor = (%d,%d)", m.CursorX, m.CursorZ)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	g, err := world.Generate(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	m := New(g, world.Build(context.Background(), g))
	m.Move(15, 12)

	c := newFakeCanvas(5, 6) // 5 map rows plus status
	m.Draw(c)
	if m.scrollX != 11 || m.scrollZ != 8 {
		t.Fatalf("scroll = (%d,%d), want (11,8)", m.scrollX, m.scrollZ)
	}
	if c.style[[2]int{4, 4}] != cursorStyle {
		t.Fatal("cursor should sit in the bottom-right map cell")
	}
}

func TestHandleKey(t *testing.T) {
	g, d := build(t, "##", "#.")
	m := New(g, d)

	if m.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)) {
		t.Fatal("arrow should not quit")
	}
	if m.CursorX != 1 {
		t.Fatalf("CursorX = %d", m.CursorX)
	}
	m.HandleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if m.CursorZ != 1 {
		t.Fatalf("CursorZ = %d", m.CursorZ)
	}
	if !m.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if !m.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestSummary(t *testing.T) {
	g, d := build(t, "#")
	s := Summary(g, d)
	if !strings.HasPrefix(s, "1x1 grid, 1 occupied, 6 surfaces (left=1 right=1 front=1 back=1 top=1 bottom=1)") {
		t.Fatalf("Summary = %q", s)
	}
}
