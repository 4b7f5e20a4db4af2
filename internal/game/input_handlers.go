package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupInputHandlers routes window callbacks into the input manager and
// keeps the viewport in step with the framebuffer
func SetupInputHandlers(app *App) {
	window := app.window

	app.inputManager.SetCallbacks(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		app.session.Renderer.UpdateViewport(fbWidth, fbHeight)
	})

	// Release the cursor when the window loses focus
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused && app.mouseCaptured {
			app.SetMouseCaptured(false)
		}
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})
}
