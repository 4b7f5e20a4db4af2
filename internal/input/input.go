package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionTurnLeft
	ActionTurnRight
	ActionToggleWireframe
	ActionToggleMouse
	ActionToggleCamera
	ActionToggleProfiling
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"move-forward", "move-backward", "move-left", "move-right", "move-up", "move-down",
	"turn-left", "turn-right",
	"toggle-wireframe", "toggle-mouse", "toggle-camera", "toggle-profiling",
	"quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// InputManager maps physical keys to actions and accumulates mouse motion
// between frames. GLFW callbacks write into it; the frame loop reads it.
type InputManager struct {
	mu sync.RWMutex

	// One key can map to multiple actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool

	// Reset by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Cursor tracking; the first sample after a reset only sets the anchor
	firstCursor    bool
	lastX, lastY   float64
	deltaX, deltaY float64
	scrollY        float64
}

// NewInputManager creates an InputManager with the default bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
		firstCursor:  true,
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	im.BindKey(glfw.KeyQ, ActionTurnLeft)
	im.BindKey(glfw.KeyLeft, ActionTurnLeft)
	im.BindKey(glfw.KeyE, ActionTurnRight)
	im.BindKey(glfw.KeyRight, ActionTurnRight)
	im.BindKey(glfw.KeyG, ActionToggleWireframe)
	im.BindKey(glfw.KeyF, ActionToggleMouse)
	im.BindKey(glfw.KeyC, ActionToggleCamera)
	im.BindKey(glfw.KeyV, ActionToggleProfiling)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent updates action state from a key event
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		// Edges are detected when the event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursor records a cursor position. Y grows downward in window
// coordinates, so the stored delta is flipped to grow upward.
func (im *InputManager) HandleCursor(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.firstCursor {
		im.lastX, im.lastY = x, y
		im.firstCursor = false
		return
	}
	im.deltaX += x - im.lastX
	im.deltaY += im.lastY - y
	im.lastX, im.lastY = x, y
}

// HandleScroll accumulates vertical scroll
func (im *InputManager) HandleScroll(yoff float64) {
	im.mu.Lock()
	im.scrollY += yoff
	im.mu.Unlock()
}

// ConsumeMouseDelta returns and clears the motion gathered since the last call
func (im *InputManager) ConsumeMouseDelta() (dx, dy float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	dx, dy = im.deltaX, im.deltaY
	im.deltaX, im.deltaY = 0, 0
	return dx, dy
}

// ConsumeScroll returns and clears the accumulated scroll
func (im *InputManager) ConsumeScroll() float64 {
	im.mu.Lock()
	defer im.mu.Unlock()

	s := im.scrollY
	im.scrollY = 0
	return s
}

// ResetCursor drops pending motion and re-anchors on the next cursor event.
// Call it whenever the cursor mode changes to avoid a jump.
func (im *InputManager) ResetCursor() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.firstCursor = true
	im.deltaX, im.deltaY = 0, 0
}

// SetCallbacks wires the window's key, cursor and scroll callbacks
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		im.HandleCursor(xpos, ypos)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		im.HandleScroll(yoff)
	})
}

// PostUpdate must be called at the end of each frame to clear edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}
