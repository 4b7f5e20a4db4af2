package surfaces

import (
	"log"
	"path/filepath"

	"dungeon-viewer/internal/config"
	"dungeon-viewer/internal/graphics"
	renderer "dungeon-viewer/internal/graphics/renderer"
	"dungeon-viewer/internal/profiling"
	"dungeon-viewer/internal/texture"
	"dungeon-viewer/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	ShadersDir = "assets/shaders/surface"

	textureUnit = 0
)

var (
	VertShader = filepath.Join(ShadersDir, "surface.vert")
	FragShader = filepath.Join(ShadersDir, "surface.frag")
)

// QuadVertices is the shared unit quad: position xyz, uv
var QuadVertices = []float32{
	-0.5, -0.5, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.0, 0.0, 0.0,
	0.5, 0.5, 0.0, 1.0, 0.0,
	-0.5, 0.5, 0.0, 1.0, 1.0,
}

// QuadIndices wind the quad clockwise when seen from +z
var QuadIndices = []uint16{0, 2, 1, 0, 3, 2}

// Fetcher queues texture loads; *texture.Loader satisfies it
type Fetcher interface {
	Load(name string, target texture.Target) bool
}

// Surfaces draws a dungeon one orientation batch at a time
type Surfaces struct {
	dungeon *world.Dungeon
	fetcher Fetcher

	shader   *graphics.Shader
	vao      uint32
	vbo      uint32
	ebo      uint32
	textures [world.OrientationCount]*graphics.Texture
}

// New creates the renderable; GL resources are made in Init
func New(d *world.Dungeon, f Fetcher) *Surfaces {
	return &Surfaces{dungeon: d, fetcher: f}
}

// Init compiles the pipeline, uploads the quad and queues the textures
func (s *Surfaces) Init() error {
	var err error
	s.shader, err = graphics.NewShader(VertShader, FragShader)
	if err != nil {
		return err
	}

	s.setupQuad()

	for _, o := range world.Orientations() {
		s.textures[o] = graphics.NewPlaceholderTexture()
		if s.fetcher != nil && !s.fetcher.Load(o.Texture(), s.textures[o]) {
			log.Printf("texture %s for %s surfaces not queued: request limit reached", o.Texture(), o)
		}
	}

	return nil
}

func (s *Surfaces) setupQuad() {
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(QuadVertices)*4, gl.Ptr(QuadVertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &s.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(QuadIndices)*2, gl.Ptr(QuadIndices), gl.STATIC_DRAW)

	stride := int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
}

// Render binds the quad once, then each orientation texture once, and
// issues one draw per surface
func (s *Surfaces) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.surfaces")()

	s.shader.Use()
	s.shader.SetMat4("viewproj", ctx.ViewProj)
	s.shader.SetInt("surfaceTex", textureUnit)
	s.shader.SetFloat("tintStrength", config.GetTintStrength())

	// The quad is wound clockwise
	gl.FrontFace(gl.CW)
	defer gl.FrontFace(gl.CCW)

	// Only the dungeon walls go wireframe; overlays drawn later stay filled
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(config.GetWireframeMode()))
	defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	gl.BindVertexArray(s.vao)
	for _, batch := range s.dungeon.Batches() {
		s.textures[batch.Orientation].Bind(textureUnit)
		for i := range batch.Surfaces {
			surf := &batch.Surfaces[i]
			s.shader.SetMat4("model", surf.Model)
			s.shader.SetVec3("color", surf.Color)
			gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(QuadIndices)), gl.UNSIGNED_SHORT, 0)
		}
	}
	gl.BindVertexArray(0)
}

// SetViewport is a no-op; the surfaces only depend on the view-projection
func (s *Surfaces) SetViewport(width, height int) {}

// Dispose releases GL resources
func (s *Surfaces) Dispose() {
	for i, t := range s.textures {
		if t != nil {
			t.Delete()
			s.textures[i] = nil
		}
	}
	if s.ebo != 0 {
		gl.DeleteBuffers(1, &s.ebo)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.shader != nil {
		s.shader.Delete()
	}
}

func polygonMode(wireframe bool) uint32 {
	if wireframe {
		return gl.LINE
	}
	return gl.FILL
}
