package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontShadersDir holds font.vert and font.frag
const FontShadersDir = "assets/shaders/font"

// DefaultFont is the monospace face baked into the binary
var DefaultFont = gomono.TTF

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX float32
	AtlasY float32
	Width  float32
	Height float32
	// Offset from the pen position on the baseline
	BearingX float32
	BearingY float32
	Advance  int
}

// FontAtlas is a baked glyph set. The pixels stay on the CPU until Upload.
type FontAtlas struct {
	TextureID  uint32
	AtlasW     int
	AtlasH     int
	Image      *image.Alpha
	Characters map[rune]FontCharacter
}

// BuildFontAtlas rasterizes printable ASCII from a TrueType/OpenType font
// into a single-channel atlas. fontPixels is the glyph size in pixels.
func BuildFontAtlas(fontBytes []byte, fontPixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const atlasW = 256
	const padding = 1

	// First pass: pack rows to find the height
	offsetX, offsetY, rowH := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, _, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		if offsetX+dr.Dx() > atlasW {
			offsetX, offsetY, rowH = 0, offsetY+rowH+padding, 0
		}
		offsetX += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}
	atlasH := nextPowerOfTwo(offsetY + rowH)

	atlasImg := image.NewAlpha(image.Rect(0, 0, atlasW, atlasH))
	characters := make(map[rune]FontCharacter)

	// Second pass: draw and record metrics
	offsetX, offsetY, rowH = 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		if offsetX+gw > atlasW {
			offsetX, offsetY, rowH = 0, offsetY+rowH+padding, 0
		}
		if gw > 0 && gh > 0 && mask != nil {
			draw.Draw(atlasImg, image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh), mask, maskp, draw.Src)
		}

		characters[r] = FontCharacter{
			AtlasX:   float32(offsetX),
			AtlasY:   float32(offsetY),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}

		offsetX += gw + padding
		rowH = max(rowH, gh)
	}

	return &FontAtlas{AtlasW: atlasW, AtlasH: atlasH, Image: atlasImg, Characters: characters}, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Upload sends the atlas to the GPU as a GL_RED texture
func (a *FontAtlas) Upload() {
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(a.AtlasW), int32(a.AtlasH), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Measure returns the width and height in pixels text occupies at scale
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			fc = a.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		maxH = max(maxH, fc.Height*scale)
	}
	return width, maxH
}

// Vertices lays text out from the baseline point (x, y), y growing down.
// Each glyph is two triangles of (x, y, u, v).
func (a *FontAtlas) Vertices(text string, x, y, scale float32) []float32 {
	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			vertices = append(vertices, a.quad(fc, x, y, scale)...)
		}
		x += float32(fc.Advance) * scale
	}
	return vertices
}

func (a *FontAtlas) quad(fc FontCharacter, x, y, scale float32) []float32 {
	xPos := x + fc.BearingX*scale
	yPos := y - fc.BearingY*scale
	w := fc.Width * scale
	h := fc.Height * scale

	u := fc.AtlasX / float32(a.AtlasW)
	v := fc.AtlasY / float32(a.AtlasH)
	du := fc.Width / float32(a.AtlasW)
	dv := fc.Height / float32(a.AtlasH)

	return []float32{
		xPos, yPos + h, u, v + dv,
		xPos + w, yPos, u + du, v,
		xPos, yPos, u, v,

		xPos, yPos + h, u, v + dv,
		xPos + w, yPos + h, u + du, v + dv,
		xPos + w, yPos, u + du, v,
	}
}

// FontRenderer draws text in window pixel coordinates
type FontRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer uploads the atlas and loads the font shader
func NewFontRenderer(atlas *FontAtlas, width, height int) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader(filepath.Join(FontShadersDir, "font.vert"), filepath.Join(FontShadersDir, "font.frag"))
	if err != nil {
		return nil, err
	}
	atlas.Upload()

	fr := &FontRenderer{atlas: atlas, shader: shader}
	fr.SetViewport(width, height)

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return fr, nil
}

// SetViewport rebuilds the pixel projection; zero sizes are ignored
func (fr *FontRenderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// RenderLines draws lines starting with the baseline at (x, yStart), one
// lineStep apart, in a single draw call
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	var vertices []float32
	y := yStart
	for _, line := range lines {
		vertices = append(vertices, fr.atlas.Vertices(line, x, y, scale)...)
		y += lineStep
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	defer gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	defer gl.Disable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVec3("textColor", color)
	fr.shader.SetMat4("projection", fr.projection)
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan then fill
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindVertexArray(0)
}

func (fr *FontRenderer) Delete() {
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	if fr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &fr.atlas.TextureID)
	}
	fr.shader.Delete()
}
