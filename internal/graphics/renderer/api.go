package renderer

import (
	"dungeon-viewer/internal/graphics"
	"dungeon-viewer/internal/player"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	Camera   *graphics.Camera
	View     player.Camera
	DT       float64
	ViewMat  mgl32.Mat4
	Proj     mgl32.Mat4
	ViewProj mgl32.Mat4

	// MouseCaptured is true while mouse look drives the camera
	MouseCaptured bool
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
