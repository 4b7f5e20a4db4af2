package hud

import (
	"fmt"
	"strings"
	"time"

	"dungeon-viewer/internal/graphics"
	renderer "dungeon-viewer/internal/graphics/renderer"
	"dungeon-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FontPixels = 16

	marginX  = 10
	firstRow = 22
	lineStep = 18
	topTasks = 8
)

var (
	TextColor      = mgl32.Vec3{1.0, 1.0, 1.0}
	ProfilingColor = mgl32.Vec3{0.8, 0.9, 0.5}
)

// HUD draws status text in the top-left corner, the frame rate in the
// top-right and, when enabled, the slowest profiling buckets so far this frame
type HUD struct {
	status func() []string

	atlas *graphics.FontAtlas
	font  *graphics.FontRenderer

	showProfiling bool
	history       profiling.FrameHistory
	lastFrame     time.Time
	width, height int
}

// NewHUD draws the lines status returns every frame
func NewHUD(status func() []string) *HUD {
	return &HUD{status: status}
}

func (h *HUD) Init() error {
	atlas, err := graphics.BuildFontAtlas(graphics.DefaultFont, FontPixels)
	if err != nil {
		return fmt.Errorf("hud font: %w", err)
	}
	h.atlas = atlas
	h.font, err = graphics.NewFontRenderer(atlas, h.width, h.height)
	return err
}

func (h *HUD) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.hud")()

	now := time.Now()
	if !h.lastFrame.IsZero() {
		h.history.Record(now.Sub(h.lastFrame), now)
	}
	h.lastFrame = now

	var lines []string
	if h.status != nil {
		lines = h.status()
	}
	h.font.RenderLines(lines, marginX, firstRow, lineStep, 1, TextColor)

	fps := fmt.Sprintf("fps: %d", h.history.FPS())
	w, _ := h.atlas.Measure(fps, 1)
	h.font.RenderLines([]string{fps}, float32(h.width)-w-marginX, firstRow, lineStep, 1, TextColor)

	if !h.showProfiling {
		return
	}
	y := float32(firstRow + lineStep*(len(lines)+1))
	h.font.RenderLines(h.profilingLines(), marginX, y, lineStep, 1, ProfilingColor)
}

func (h *HUD) profilingLines() []string {
	lo, avg, hi := h.history.Stats()
	lines := []string{
		fmt.Sprintf("frame: %s avg, %s min, %s max", ms(avg), ms(lo), ms(hi)),
		fmt.Sprintf("tracked(render): %s", ms(profiling.SumWithPrefix("renderer."))),
	}
	if top := profiling.TopN(topTasks); top != "" {
		lines = append(lines, strings.Split(top, ", ")...)
	}
	return lines
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000.0)
}

// ToggleProfiling flips the profiling overlay and returns the new state
func (h *HUD) ToggleProfiling() bool {
	h.showProfiling = !h.showProfiling
	return h.showProfiling
}

func (h *HUD) ShowProfiling() bool { return h.showProfiling }

func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.font != nil {
		h.font.SetViewport(width, height)
	}
}

func (h *HUD) Dispose() {
	if h.font != nil {
		h.font.Delete()
	}
}
