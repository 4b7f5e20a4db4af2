package config

import "sync"

// RenderSettings holds settings that can change while the viewer runs
type RenderSettings struct {
	mu            sync.RWMutex
	wireframeMode bool
	fpsLimit      int
	tintStrength  float32
}

const (
	DefaultFPSLimit     = 144
	DefaultTintStrength = 0.25
)

var globalRenderSettings = &RenderSettings{
	fpsLimit:     DefaultFPSLimit,
	tintStrength: DefaultTintStrength,
}

// GetWireframeMode reports whether surfaces are drawn as lines
func GetWireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframeMode
}

func SetWireframeMode(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframeMode = enabled
}

// ToggleWireframeMode flips wireframe mode and returns the new value
func ToggleWireframeMode() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframeMode = !globalRenderSettings.wireframeMode
	return globalRenderSettings.wireframeMode
}

// GetFPSLimit returns the frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values disable the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetTintStrength returns how strongly surface colors are mixed over textures
func GetTintStrength() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.tintStrength
}

// SetTintStrength clamps to [0, 1]
func SetTintStrength(strength float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}

	globalRenderSettings.tintStrength = strength
}
