package renderer

import (
	"dungeon-viewer/internal/graphics"
	"dungeon-viewer/internal/player"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ClearColor is the background behind the dungeon
var ClearColor = mgl32.Vec4{0.05, 0.05, 0.05, 1.0}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer configures GL state and initializes the given renderables in order
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)

	r := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(width, height),
	}

	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			// Tear down what already initialized
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
		rb.SetViewport(width, height)
	}

	return r, nil
}

// Render draws one frame from the point of view of cam
func (r *Renderer) Render(cam player.Camera, dt float64, mouseCaptured bool) {
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Renderables that honor wireframe mode switch it on themselves
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	r.camera.FOV = cam.Zoom()
	view := cam.ViewMatrix()
	proj := r.camera.GetProjectionMatrix()

	ctx := RenderContext{
		Camera:        r.camera,
		View:          cam,
		DT:            dt,
		ViewMat:       view,
		Proj:          proj,
		ViewProj:      proj.Mul4(view),
		MouseCaptured: mouseCaptured,
	}

	for _, rb := range r.renderables {
		rb.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// UpdateViewport propagates a framebuffer resize
func (r *Renderer) UpdateViewport(width, height int) {
	r.camera.SetViewport(width, height)
	for _, rb := range r.renderables {
		rb.SetViewport(width, height)
	}
}
