package direction

import (
	"path/filepath"

	"dungeon-viewer/internal/graphics"
	renderer "dungeon-viewer/internal/graphics/renderer"
	"dungeon-viewer/internal/player"
	"dungeon-viewer/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "assets/shaders/direction"
)

var (
	DirectionVertShader = filepath.Join(ShadersDir, "direction.vert")
	DirectionFragShader = filepath.Join(ShadersDir, "direction.frag")

	Color = mgl32.Vec3{1.0, 0.3, 0.2}

	arrowPosition  = mgl32.Vec2{0.0, -0.85}
	letterPosition = mgl32.Vec2{0.0, -0.72}
)

// Arrow pointing up (north) as two line loops: body, then head
var DirectionVertices = []float32{
	-0.01, -0.08,
	0.01, -0.08,
	0.01, -0.02,
	-0.01, -0.02,

	-0.03, -0.02,
	0.03, -0.02,
	0.0, 0.02,
}

// Letter strokes as line pairs
var letters = map[player.Heading][]float32{
	player.North: {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, -0.02,
		0.02, -0.02, 0.02, 0.02,
	},
	player.East: {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, 0.02,
		-0.02, 0.0, 0.01, 0.0,
		-0.02, -0.02, 0.02, -0.02,
	},
	player.South: {
		0.02, 0.02, -0.02, 0.02,
		-0.02, 0.02, -0.02, 0.0,
		-0.02, 0.0, 0.02, 0.0,
		0.02, 0.0, 0.02, -0.02,
		0.02, -0.02, -0.02, -0.02,
	},
	player.West: {
		-0.02, 0.02, -0.02, -0.02,
		-0.02, -0.02, -0.01, 0.0,
		-0.01, 0.0, 0.01, -0.02,
		0.01, -0.02, 0.02, 0.0,
		0.02, 0.0, 0.02, 0.02,
	},
}

// Direction is a map-style compass: the arrow turns with the camera and
// the letter names the grid heading it is closest to
type Direction struct {
	shader    *graphics.Shader
	vao       uint32
	vbo       uint32
	letterVAO uint32
	letterVBO uint32
}

func NewDirection() *Direction {
	return &Direction{}
}

func (d *Direction) Init() error {
	var err error
	d.shader, err = graphics.NewShader(DirectionVertShader, DirectionFragShader)
	if err != nil {
		return err
	}

	d.vao, d.vbo = lineBuffer(DirectionVertices, gl.STATIC_DRAW)
	d.letterVAO, d.letterVBO = lineBuffer(nil, gl.DYNAMIC_DRAW)
	return nil
}

func lineBuffer(vertices []float32, usage uint32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (d *Direction) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.direction")()

	yaw := player.Facing(ctx.View)

	d.shader.Use()
	d.shader.SetFloat("aspect", ctx.Camera.AspectRatio)
	d.shader.SetVec3("color", Color)

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	// North (yaw -90) points up; turning right rotates clockwise
	d.shader.SetVec2("position", arrowPosition)
	d.shader.SetFloat("rotation", -mgl32.DegToRad(yaw-player.DefaultYaw))
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.LINE_LOOP, 0, 4)
	gl.DrawArrays(gl.LINE_LOOP, 4, 3)

	letter := letters[player.HeadingFromYaw(yaw)]
	d.shader.SetVec2("position", letterPosition)
	d.shader.SetFloat("rotation", 0)
	gl.BindVertexArray(d.letterVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.letterVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(letter)*4, gl.Ptr(letter), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(letter)/2))
	gl.BindVertexArray(0)
}

func (d *Direction) SetViewport(width, height int) {}

func (d *Direction) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.letterVAO != 0 {
		gl.DeleteVertexArrays(1, &d.letterVAO)
	}
	if d.letterVBO != 0 {
		gl.DeleteBuffers(1, &d.letterVBO)
	}
	if d.shader != nil {
		d.shader.Delete()
	}
}
