package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is anything the renderer can look through
type Camera interface {
	ViewMatrix() mgl32.Mat4
	// Zoom is the vertical field of view in degrees
	Zoom() float32
	Eye() mgl32.Vec3
}

// Movement is a camera-relative direction
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Free camera defaults
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0

	MinZoom  = 1.0
	MaxZoom  = 45.0
	MaxPitch = 89.0
)

// StartPosition is where the free camera spawns
var StartPosition = mgl32.Vec3{2.5, 1.5, 3.5}

var worldUp = mgl32.Vec3{0, 1, 0}

// FreeCamera flies anywhere, steered by yaw/pitch in degrees
type FreeCamera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	MovementSpeed    float32
	MouseSensitivity float32
	ZoomDeg          float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

// NewFreeCamera places a camera at pos looking down -z
func NewFreeCamera(pos mgl32.Vec3) *FreeCamera {
	c := &FreeCamera{
		Position:         pos,
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		ZoomDeg:          DefaultZoom,
	}
	c.updateVectors()
	return c
}

// ProcessKeyboard moves along the camera axes. Up and Down use the world axis.
func (c *FreeCamera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(worldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(worldUp.Mul(velocity))
	}
}

// ProcessMouseMovement turns by a cursor delta; positive dy looks up
func (c *FreeCamera) ProcessMouseMovement(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// ProcessMouseScroll zooms in for positive dy
func (c *FreeCamera) ProcessMouseScroll(dy float32) {
	c.ZoomDeg = mgl32.Clamp(c.ZoomDeg-dy, MinZoom, MaxZoom)
}

// LookAt sets yaw and pitch directly
func (c *FreeCamera) LookAt(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

func (c *FreeCamera) Front() mgl32.Vec3 { return c.front }
func (c *FreeCamera) Right() mgl32.Vec3 { return c.right }

func (c *FreeCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

func (c *FreeCamera) Zoom() float32   { return c.ZoomDeg }
func (c *FreeCamera) Eye() mgl32.Vec3 { return c.Position }

func (c *FreeCamera) updateVectors() {
	c.front = frontVector(c.Yaw, c.Pitch)
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func frontVector(yaw, pitch float32) mgl32.Vec3 {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Facing returns the horizontal look direction of any camera as a yaw in
// degrees, read back from its view matrix
func Facing(c Camera) float32 {
	// Third row of a look-at view matrix is the negated forward vector
	f := c.ViewMatrix().Row(2).Vec3().Mul(-1)
	return mgl32.RadToDeg(float32(math.Atan2(float64(f.Z()), float64(f.X()))))
}
