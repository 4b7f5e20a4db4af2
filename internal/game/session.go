package game

import (
	"context"
	"fmt"
	"log"

	"dungeon-viewer/internal/config"
	"dungeon-viewer/internal/graphics/renderables/crosshair"
	"dungeon-viewer/internal/graphics/renderables/direction"
	"dungeon-viewer/internal/graphics/renderables/hud"
	"dungeon-viewer/internal/graphics/renderables/surfaces"
	"dungeon-viewer/internal/graphics/renderables/wireframe"
	"dungeon-viewer/internal/graphics/renderer"
	standardInput "dungeon-viewer/internal/input"
	"dungeon-viewer/internal/player"
	"dungeon-viewer/internal/profiling"
	"dungeon-viewer/internal/texture"
	"dungeon-viewer/internal/world"
)

// texturePumpLimit caps uploads per frame so a burst of arrivals cannot stall a frame
const texturePumpLimit = 4

// CameraMode selects which camera drives the view
type CameraMode int

const (
	ModeFree CameraMode = iota
	ModeTurn
)

func (m CameraMode) String() string {
	if m == ModeTurn {
		return config.CameraTurn
	}
	return config.CameraFree
}

// Session is one loaded dungeon with its cameras and GPU resources
type Session struct {
	Grid     *world.Grid
	Dungeon  *world.Dungeon
	Loader   *texture.Loader
	Renderer *renderer.Renderer
	HUD      *hud.HUD

	Free *player.FreeCamera
	Turn *player.TurnCamera
	Mode CameraMode

	stepDuration float32
}

// NewSession builds the dungeon, starts the texture workers and initializes
// the renderables. Needs a current GL context.
func NewSession(ctx context.Context, cfg config.Config, width, height int) (*Session, error) {
	grid, err := world.Open(cfg.Source())
	if err != nil {
		return nil, fmt.Errorf("load grid: %w", err)
	}

	d := world.Build(ctx, grid)
	log.Printf("dungeon %dx%d: %d occupied tiles, %d surfaces %v, fingerprint %016x",
		grid.Width(), grid.Length(), grid.OccupiedCount(), d.Len(), d.Counts(), grid.Fingerprint())

	loader := texture.NewLoader(texture.Options{
		Dir:         cfg.TexturesDir,
		Workers:     cfg.Workers,
		MaxRequests: cfg.MaxRequests,
		MaxFileSize: cfg.MaxFileSize,
	})

	s := &Session{
		Grid:         grid,
		Dungeon:      d,
		Loader:       loader,
		Free:         player.NewFreeCamera(player.StartPosition),
		stepDuration: float32(cfg.StepDuration.Seconds()),
	}
	s.HUD = hud.NewHUD(s.StatusLines)

	s.Renderer, err = renderer.NewRenderer(width, height,
		surfaces.New(d, loader),
		wireframe.NewWireframe(s.stepTarget),
		crosshair.NewCrosshair(),
		direction.NewDirection(),
		s.HUD,
	)
	if err != nil {
		loader.Shutdown()
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	if cfg.Camera == config.CameraTurn {
		if err := s.SetMode(ModeTurn); err != nil {
			log.Printf("turn camera unavailable, staying in free mode: %v", err)
		}
	}

	return s, nil
}

// SetMode switches cameras. The turn camera starts on the walkable tile
// nearest the free camera and the free camera inherits the turn camera's
// eye and heading.
func (s *Session) SetMode(mode CameraMode) error {
	if mode == s.Mode {
		return nil
	}

	switch mode {
	case ModeTurn:
		tx, tz := player.TileAt(s.Free.Position)
		x, z, err := player.NearestWalkable(s.Grid, tx, tz)
		if err != nil {
			return err
		}
		tc, err := player.NewTurnCamera(s.Grid, x, z, player.HeadingFromYaw(s.Free.Yaw))
		if err != nil {
			return err
		}
		tc.StepDuration = s.stepDuration
		tc.ZoomDeg = s.Free.ZoomDeg
		s.Turn = tc
	case ModeFree:
		if s.Turn != nil {
			s.Free.Position = s.Turn.Eye()
			s.Free.LookAt(s.Turn.Heading().Yaw(), 0)
			s.Free.ZoomDeg = s.Turn.ZoomDeg
		}
	}

	s.Mode = mode
	log.Printf("camera mode: %v", mode)
	return nil
}

// ToggleMode flips between the free and turn-based cameras
func (s *Session) ToggleMode() {
	next := ModeTurn
	if s.Mode == ModeTurn {
		next = ModeFree
	}
	if err := s.SetMode(next); err != nil {
		log.Printf("cannot switch camera to %v: %v", next, err)
	}
}

// Camera returns the active camera
func (s *Session) Camera() player.Camera {
	if s.Mode == ModeTurn && s.Turn != nil {
		return s.Turn
	}
	return s.Free
}

// Update applies input to the active camera and services the texture queue
func (s *Session) Update(dt float64, im *standardInput.InputManager, mouseCaptured bool) {
	func() {
		defer profiling.Track("camera.Update")()
		if s.Mode == ModeTurn && s.Turn != nil {
			s.updateTurn(float32(dt), im)
		} else {
			s.updateFree(float32(dt), im, mouseCaptured)
		}
	}()

	func() {
		defer profiling.Track("texture.Pump")()
		if n := s.Loader.Pump(texturePumpLimit); n > 0 {
			log.Printf("uploaded %d texture(s), %d pending", n, s.Loader.Pending())
		}
	}()
}

var freeMoves = []struct {
	action standardInput.Action
	move   player.Movement
}{
	{standardInput.ActionMoveForward, player.Forward},
	{standardInput.ActionMoveBackward, player.Backward},
	{standardInput.ActionMoveLeft, player.Left},
	{standardInput.ActionMoveRight, player.Right},
	{standardInput.ActionMoveUp, player.Up},
	{standardInput.ActionMoveDown, player.Down},
}

func (s *Session) updateFree(dt float32, im *standardInput.InputManager, mouseCaptured bool) {
	for _, m := range freeMoves {
		if im.IsActive(m.action) {
			s.Free.ProcessKeyboard(m.move, dt)
		}
	}

	dx, dy := im.ConsumeMouseDelta()
	if mouseCaptured {
		s.Free.ProcessMouseMovement(float32(dx), float32(dy))
	}
	if scroll := im.ConsumeScroll(); scroll != 0 {
		s.Free.ProcessMouseScroll(float32(scroll))
	}
}

func (s *Session) updateTurn(dt float32, im *standardInput.InputManager) {
	// Held keys keep stepping once each animation ends
	for _, m := range freeMoves[:4] {
		if im.IsActive(m.action) {
			s.Turn.Step(m.move)
		}
	}
	if im.IsActive(standardInput.ActionTurnLeft) {
		s.Turn.Turn(false)
	}
	if im.IsActive(standardInput.ActionTurnRight) {
		s.Turn.Turn(true)
	}

	// Mouse look does not apply on the grid
	im.ConsumeMouseDelta()
	if scroll := im.ConsumeScroll(); scroll != 0 {
		s.Turn.ProcessMouseScroll(float32(scroll))
	}

	s.Turn.Update(dt)
}

// stepTarget is the tile the turn camera would walk into, outlined while idle
func (s *Session) stepTarget() (wireframe.Target, bool) {
	if s.Mode != ModeTurn || s.Turn == nil || s.Turn.Moving() {
		return wireframe.Target{}, false
	}
	x, z, ok := s.Turn.Ahead()
	return wireframe.Target{X: x, Z: z, Walkable: ok}, true
}

// StatusLines describes the active camera for the on-screen overlay
func (s *Session) StatusLines() []string {
	return statusLines(s.Mode, s.Camera(), s.Turn, s.Loader.Pending())
}

func statusLines(mode CameraMode, cam player.Camera, turn *player.TurnCamera, pending int) []string {
	eye := cam.Eye()
	lines := []string{
		fmt.Sprintf("camera: %v", mode),
		fmt.Sprintf("pos: %.2f, %.2f, %.2f", eye.X(), eye.Y(), eye.Z()),
	}
	if mode == ModeTurn && turn != nil {
		x, z := turn.Tile()
		lines = append(lines, fmt.Sprintf("tile: (%d,%d) facing %v", x, z, turn.Heading()))
	} else {
		lines = append(lines, fmt.Sprintf("facing: %v", player.HeadingFromYaw(player.Facing(cam))))
	}
	if pending > 0 {
		lines = append(lines, fmt.Sprintf("textures pending: %d", pending))
	}
	return lines
}

// Render draws the dungeon through the active camera
func (s *Session) Render(dt float64, mouseCaptured bool) {
	defer profiling.Track("renderer.Render")()
	s.Renderer.Render(s.Camera(), dt, mouseCaptured && s.Mode == ModeFree)
}

// Cleanup releases GPU resources and stops the texture workers
func (s *Session) Cleanup() {
	s.Loader.Shutdown()
	s.Renderer.Dispose()
}
