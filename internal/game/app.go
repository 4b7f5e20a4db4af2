package game

import (
	"log"
	"time"

	"dungeon-viewer/internal/config"
	standardInput "dungeon-viewer/internal/input"
	"dungeon-viewer/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// App is the explicit application context: window, input, the loaded
// session and frame timing. It is only touched from the main thread.
type App struct {
	window       *glfw.Window
	inputManager *standardInput.InputManager
	session      *Session

	mouseCaptured bool
	slowFrame     time.Duration

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(window *glfw.Window, im *standardInput.InputManager, s *Session, cfg config.Config) *App {
	return &App{
		window:       window,
		inputManager: im,
		session:      s,
		slowFrame:    cfg.SlowFrame,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}
}

// Session returns the loaded dungeon session
func (a *App) Session() *Session { return a.session }

// MouseCaptured reports whether the cursor is hidden and steering the camera
func (a *App) MouseCaptured() bool { return a.mouseCaptured }

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	a.handleActions()
	a.session.Update(dt, a.inputManager, a.mouseCaptured)
	a.session.Render(dt, a.mouseCaptured)

	a.window.SwapBuffers()

	processing := time.Since(startTick)
	if a.slowFrame > 0 && processing > a.slowFrame {
		log.Printf("frame %v. Top tasks: %s", processing, profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags

	a.fpsLimiter.Wait(config.GetFPSLimit())
}

// handleActions runs the one-shot toggles bound to key presses
func (a *App) handleActions() {
	im := a.inputManager

	if im.JustPressed(standardInput.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(standardInput.ActionToggleWireframe) {
		log.Printf("wireframe: %v", config.ToggleWireframeMode())
	}
	if im.JustPressed(standardInput.ActionToggleMouse) {
		a.SetMouseCaptured(!a.mouseCaptured)
	}
	if im.JustPressed(standardInput.ActionToggleCamera) {
		a.session.ToggleMode()
	}
	if im.JustPressed(standardInput.ActionToggleProfiling) {
		log.Printf("profiling overlay: %v", a.session.HUD.ToggleProfiling())
	}
}

// SetMouseCaptured hides the cursor and routes its motion to the free camera
func (a *App) SetMouseCaptured(captured bool) {
	a.mouseCaptured = captured
	if captured {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	// Drop the jump between the last free position and the captured one
	a.inputManager.ResetCursor()
}

// RefreshRender repaints during a live resize
func (a *App) RefreshRender() {
	a.session.Render(0, a.mouseCaptured)
	a.window.SwapBuffers()
}
