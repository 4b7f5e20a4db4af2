package crosshair

import (
	"path/filepath"

	"dungeon-viewer/internal/graphics"
	renderer "dungeon-viewer/internal/graphics/renderer"
	"dungeon-viewer/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "assets/shaders/crosshair"
)

var (
	VertShader = filepath.Join(ShadersDir, "crosshair.vert")
	FragShader = filepath.Join(ShadersDir, "crosshair.frag")

	Color = mgl32.Vec3{0.9, 0.9, 0.9}
)

var Vertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Crosshair marks the screen center while the mouse steers the camera
type Crosshair struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

func (c *Crosshair) Init() error {
	var err error
	c.shader, err = graphics.NewShader(VertShader, FragShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(Vertices)*4, gl.Ptr(Vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)

	return nil
}

// Render draws only while the cursor is captured
func (c *Crosshair) Render(ctx renderer.RenderContext) {
	if !ctx.MouseCaptured {
		return
	}
	defer profiling.Track("renderer.crosshair")()

	c.shader.Use()
	c.shader.SetFloat("aspect", ctx.Camera.AspectRatio)
	c.shader.SetVec3("color", Color)

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.LINES, 0, 4)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (c *Crosshair) SetViewport(width, height int) {}

func (c *Crosshair) Dispose() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}
