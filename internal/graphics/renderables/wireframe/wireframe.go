package wireframe

import (
	"path/filepath"

	"dungeon-viewer/internal/graphics"
	renderer "dungeon-viewer/internal/graphics/renderer"
	"dungeon-viewer/internal/profiling"
	"dungeon-viewer/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "assets/shaders/wireframe"

	// Shrink so the outline does not z-fight with the walls it touches
	inset = 0.98
)

var (
	WireframeVertShader = filepath.Join(ShadersDir, "wireframe.vert")
	WireframeFragShader = filepath.Join(ShadersDir, "wireframe.frag")

	OpenColor    = mgl32.Vec3{0.2, 0.9, 0.3}
	BlockedColor = mgl32.Vec3{0.9, 0.2, 0.2}
)

// Unit cube edges as line pairs
var cubeEdges = []float32{
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// Target is the tile to outline
type Target struct {
	X, Z     int
	Walkable bool
}

// Wireframe outlines one tile volume, the one the turn-based camera would
// step into next
type Wireframe struct {
	target func() (Target, bool)

	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewWireframe draws whatever target reports; nothing when it returns false
func NewWireframe(target func() (Target, bool)) *Wireframe {
	return &Wireframe{target: target}
}

func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(WireframeVertShader, WireframeFragShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeEdges)*4, gl.Ptr(cubeEdges), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)

	return nil
}

func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if w.target == nil {
		return
	}
	t, ok := w.target()
	if !ok {
		return
	}
	defer profiling.Track("renderer.wireframe")()

	color := BlockedColor
	if t.Walkable {
		color = OpenColor
	}

	w.shader.Use()
	w.shader.SetMat4("viewproj", ctx.ViewProj)
	w.shader.SetMat4("model", TileModel(t.X, t.Z))
	w.shader.SetVec3("color", color)

	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
	gl.BindVertexArray(0)
}

// TileModel maps the unit cube onto the volume of tile (x, z)
func TileModel(x, z int) mgl32.Mat4 {
	c := world.TileCenter(x, z)
	return mgl32.Translate3D(c.X(), c.Y(), c.Z()).Mul4(
		mgl32.Scale3D(world.TileWidth*inset, world.TileHeight*inset, world.TileLength*inset))
}

func (w *Wireframe) SetViewport(width, height int) {}

func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}
