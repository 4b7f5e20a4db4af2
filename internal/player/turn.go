package player

import (
	"errors"
	"fmt"
	"math"

	"dungeon-viewer/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Walkable reports which tiles a turn-based camera may stand on.
// *world.Grid satisfies it.
type Walkable interface {
	Width() int
	Length() int
	Occupied(x, z int) bool
}

// Heading is one of the four grid directions, clockwise from north (-z)
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// Offset is the tile step when walking forward with this heading
func (h Heading) Offset() (dx, dz int) {
	switch h {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Yaw is the free-camera yaw that faces this heading
func (h Heading) Yaw() float32 {
	return DefaultYaw + 90*float32(h)
}

func (h Heading) turn(quarters int) Heading {
	return Heading(((int(h)+quarters)%4 + 4) % 4)
}

// HeadingFromYaw snaps a yaw in degrees to the nearest heading
func HeadingFromYaw(yaw float32) Heading {
	q := int(math.Round(float64(yaw-DefaultYaw) / 90))
	return North.turn(q)
}

// DefaultStepDuration matches the key cooldown of the free camera
const DefaultStepDuration = 0.15

var (
	ErrNotWalkable = errors.New("tile is not walkable")
	ErrNoWalkable  = errors.New("grid has no walkable tile")
)

// TurnCamera stands on a tile and moves one tile or a quarter turn at a time.
// Moves are animated over StepDuration; input during a move is ignored.
type TurnCamera struct {
	grid         Walkable
	StepDuration float32
	ZoomDeg      float32

	tileX, tileZ int
	heading      Heading

	// Animation state
	fromPos, toPos mgl32.Vec3
	fromYaw, toYaw float32
	elapsed        float32
	moving         bool

	pos mgl32.Vec3
	yaw float32
}

// NewTurnCamera places the camera on tile (x, z), which must be walkable
func NewTurnCamera(grid Walkable, x, z int, h Heading) (*TurnCamera, error) {
	if !grid.Occupied(x, z) {
		return nil, fmt.Errorf("start tile (%d, %d): %w", x, z, ErrNotWalkable)
	}
	c := &TurnCamera{
		grid:         grid,
		StepDuration: DefaultStepDuration,
		ZoomDeg:      DefaultZoom,
		tileX:        x,
		tileZ:        z,
		heading:      h,
	}
	c.pos = world.TileCenter(x, z)
	c.yaw = h.Yaw()
	return c, nil
}

// TileAt maps a world position to the tile containing it
func TileAt(pos mgl32.Vec3) (x, z int) {
	x = int(math.Round(float64(pos.X() / world.TileWidth)))
	z = int(math.Round(float64(pos.Z() / world.TileLength)))
	return x, z
}

// NearestWalkable finds the walkable tile closest to (x, z), preferring
// lower x then lower z on ties
func NearestWalkable(grid Walkable, x, z int) (int, int, error) {
	if grid.Occupied(x, z) {
		return x, z, nil
	}
	bestX, bestZ, best := 0, 0, -1
	for i := 0; i < grid.Width(); i++ {
		for j := 0; j < grid.Length(); j++ {
			if !grid.Occupied(i, j) {
				continue
			}
			d := (i-x)*(i-x) + (j-z)*(j-z)
			if best < 0 || d < best {
				bestX, bestZ, best = i, j, d
			}
		}
	}
	if best < 0 {
		return 0, 0, ErrNoWalkable
	}
	return bestX, bestZ, nil
}

// Tile returns the tile the camera stands on, or is moving to
func (c *TurnCamera) Tile() (x, z int) { return c.tileX, c.tileZ }

func (c *TurnCamera) Heading() Heading { return c.heading }

// Moving reports whether an animation is in flight
func (c *TurnCamera) Moving() bool { return c.moving }

// Step walks one tile. Up and Down are not grid moves and are rejected, as is
// a step onto an empty or out-of-bounds tile.
func (c *TurnCamera) Step(m Movement) bool {
	if c.moving {
		return false
	}
	var h Heading
	switch m {
	case Forward:
		h = c.heading
	case Backward:
		h = c.heading.turn(2)
	case Left:
		h = c.heading.turn(-1)
	case Right:
		h = c.heading.turn(1)
	default:
		return false
	}
	dx, dz := h.Offset()
	nx, nz := c.tileX+dx, c.tileZ+dz
	if !c.grid.Occupied(nx, nz) {
		return false
	}

	c.tileX, c.tileZ = nx, nz
	c.begin(world.TileCenter(nx, nz), c.yaw)
	return true
}

// Turn rotates a quarter turn, clockwise when right is true
func (c *TurnCamera) Turn(right bool) bool {
	if c.moving {
		return false
	}
	q := -1
	if right {
		q = 1
	}
	c.heading = c.heading.turn(q)
	c.begin(c.pos, c.yaw+90*float32(q))
	return true
}

func (c *TurnCamera) begin(pos mgl32.Vec3, yaw float32) {
	c.fromPos, c.toPos = c.pos, pos
	c.fromYaw, c.toYaw = c.yaw, yaw
	c.elapsed = 0
	c.moving = true
	if c.StepDuration <= 0 {
		c.finish()
	}
}

func (c *TurnCamera) finish() {
	c.pos = c.toPos
	// Keep yaw bounded after many turns
	c.yaw = c.heading.Yaw()
	c.moving = false
}

// Update advances the animation by dt seconds
func (c *TurnCamera) Update(dt float32) {
	if !c.moving {
		return
	}
	c.elapsed += dt
	t := c.elapsed / c.StepDuration
	if t >= 1 {
		c.finish()
		return
	}
	c.pos = c.fromPos.Add(c.toPos.Sub(c.fromPos).Mul(t))
	c.yaw = c.fromYaw + (c.toYaw-c.fromYaw)*t
}

// ProcessMouseScroll zooms like the free camera
func (c *TurnCamera) ProcessMouseScroll(dy float32) {
	c.ZoomDeg = mgl32.Clamp(c.ZoomDeg-dy, MinZoom, MaxZoom)
}

// Yaw is the current, possibly interpolated, yaw in degrees
func (c *TurnCamera) Yaw() float32 { return c.yaw }

func (c *TurnCamera) ViewMatrix() mgl32.Mat4 {
	front := frontVector(c.yaw, 0)
	return mgl32.LookAtV(c.pos, c.pos.Add(front), worldUp)
}

func (c *TurnCamera) Zoom() float32   { return c.ZoomDeg }
func (c *TurnCamera) Eye() mgl32.Vec3 { return c.pos }

// Ahead returns the tile a forward step would enter and whether it is walkable
func (c *TurnCamera) Ahead() (x, z int, walkable bool) {
	dx, dz := c.heading.Offset()
	x, z = c.tileX+dx, c.tileZ+dz
	return x, z, c.grid.Occupied(x, z)
}
