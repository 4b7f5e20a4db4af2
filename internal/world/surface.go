package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Orientation identifies which face of a tile volume a surface covers.
type Orientation int

const (
	OrientationLeft Orientation = iota
	OrientationRight
	OrientationFront
	OrientationBack
	OrientationTop
	OrientationBottom
	OrientationCount
)

// Tile dimensions in world units
const (
	TileWidth        = 2.0
	TileWidthOffset  = TileWidth / 2.0
	TileLength       = 2.0
	TileLengthOffset = TileLength / 2.0
	TileHeight       = 2.5
	TileHeightOffset = TileHeight / 2.0
)

var (
	wallScale  = mgl32.Scale3D(TileWidth, TileHeight, 0)
	floorScale = mgl32.Scale3D(TileWidth, TileLength, 0)

	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}

	orientationRotation = [OrientationCount]mgl32.Mat4{
		OrientationLeft:   mgl32.HomogRotate3D(mgl32.DegToRad(90), axisY),
		OrientationRight:  mgl32.HomogRotate3D(mgl32.DegToRad(-90), axisY),
		OrientationFront:  mgl32.HomogRotate3D(0, axisY),
		OrientationBack:   mgl32.HomogRotate3D(mgl32.DegToRad(180), axisY),
		OrientationTop:    mgl32.HomogRotate3D(mgl32.DegToRad(90), axisX),
		OrientationBottom: mgl32.HomogRotate3D(mgl32.DegToRad(-90), axisX),
	}

	orientationColor = [OrientationCount]mgl32.Vec3{
		OrientationLeft:   {155.0 / 255.0, 66.0 / 255.0, 42.0 / 255.0},
		OrientationRight:  {66.0 / 255.0, 155.0 / 255.0, 42.0 / 255.0},
		OrientationFront:  {66.0 / 255.0, 42.0 / 255.0, 155.0 / 255.0},
		OrientationBack:   {155.0 / 255.0, 42.0 / 255.0, 66.0 / 255.0},
		OrientationTop:    {1, 1, 1},
		OrientationBottom: {0, 0, 0},
	}

	orientationTexture = [OrientationCount]string{
		OrientationLeft:   "bricks2.jpg",
		OrientationRight:  "bricks2.jpg",
		OrientationFront:  "brickwall.jpg",
		OrientationBack:   "brickwall.jpg",
		OrientationTop:    "toy_box_diffuse.png",
		OrientationBottom: "wood.png",
	}

	orientationNames = [OrientationCount]string{
		"left", "right", "front", "back", "top", "bottom",
	}
)

// Orientations lists every orientation in render order.
func Orientations() []Orientation {
	return []Orientation{
		OrientationLeft,
		OrientationRight,
		OrientationFront,
		OrientationBack,
		OrientationTop,
		OrientationBottom,
	}
}

func (o Orientation) String() string {
	if o < 0 || o >= OrientationCount {
		return "unknown"
	}
	return orientationNames[o]
}

// IsWall reports whether the orientation is one of the four lateral faces.
func (o Orientation) IsWall() bool {
	return o >= OrientationLeft && o <= OrientationBack
}

// Color returns the fixed tint of the orientation.
func (o Orientation) Color() mgl32.Vec3 {
	return orientationColor[o]
}

// Texture returns the image file name bound while drawing the orientation.
func (o Orientation) Texture() string {
	return orientationTexture[o]
}

// Rotation returns the rotation applied to the unit quad.
func (o Orientation) Rotation() mgl32.Mat4 {
	return orientationRotation[o]
}

// Normal is the facing direction of the quad after rotation.
// Every face points into its own tile.
func (o Orientation) Normal() mgl32.Vec3 {
	return orientationRotation[o].Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
}

// Surface is one textured quad of an extruded tile.
type Surface struct {
	Orientation Orientation
	TileX       int
	TileZ       int
	Model       mgl32.Mat4
	Color       mgl32.Vec3
}

// TileCenter returns the world-space center of the tile at (x, z).
func TileCenter(x, z int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x) * TileWidth, 0, float32(z) * TileLength}
}

// newSurface places the unit quad on the given face of tile (x, z).
func newSurface(o Orientation, x, z int) Surface {
	pos := TileCenter(x, z)
	scale := wallScale
	switch o {
	case OrientationLeft:
		pos[0] -= TileWidthOffset
	case OrientationRight:
		pos[0] += TileWidthOffset
	case OrientationFront:
		pos[2] -= TileLengthOffset
	case OrientationBack:
		pos[2] += TileLengthOffset
	case OrientationTop:
		pos[1] += TileHeightOffset
		scale = floorScale
	case OrientationBottom:
		pos[1] -= TileHeightOffset
		scale = floorScale
	}

	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(orientationRotation[o]).
		Mul4(scale)

	return Surface{
		Orientation: o,
		TileX:       x,
		TileZ:       z,
		Model:       model,
		Color:       orientationColor[o],
	}
}

// Position returns the world-space center of the surface.
func (s Surface) Position() mgl32.Vec3 {
	return s.Model.Col(3).Vec3()
}
