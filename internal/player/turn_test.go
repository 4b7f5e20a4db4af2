package player

import (
	"errors"
	"testing"

	"dungeon-viewer/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Column x=0 is "###", x=1 is "#.#": tile (1,1) is a wall.
func corridor(t *testing.T) *world.Grid {
	t.Helper()
	g, err := world.ParseGrid("###", "#.#", "###")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewTurnCameraRequiresWalkable(t *testing.T) {
	g := corridor(t)
	if _, err := NewTurnCamera(g, 1, 1, North); !errors.Is(err, ErrNotWalkable) {
		t.Fatalf("err = %v, want ErrNotWalkable", err)
	}
	if _, err := NewTurnCamera(g, -1, 0, North); !errors.Is(err, ErrNotWalkable) {
		t.Fatalf("out of bounds err = %v", err)
	}
}

func TestTurnCameraStep(t *testing.T) {
	g := corridor(t)
	c, err := NewTurnCamera(g, 0, 0, South)
	if err != nil {
		t.Fatal(err)
	}
	c.StepDuration = 0

	if !c.Step(Forward) {
		t.Fatal("step south onto (0,1) should succeed")
	}
	if x, z := c.Tile(); x != 0 || z != 1 {
		t.Fatalf("tile = (%d,%d), want (0,1)", x, z)
	}
	if !vecNear(c.Eye(), world.TileCenter(0, 1)) {
		t.Fatalf("eye = %v", c.Eye())
	}

	// Facing south, left is east: (1,1) is a wall
	if c.Step(Left) {
		t.Fatal("step into wall should be blocked")
	}
	// Right is west, out of bounds
	if c.Step(Right) {
		t.Fatal("step out of bounds should be blocked")
	}
	if x, z := c.Tile(); x != 0 || z != 1 {
		t.Fatalf("blocked step moved camera to (%d,%d)", x, z)
	}
	if c.Step(Up) || c.Step(Down) {
		t.Fatal("vertical movement is not a grid step")
	}

	if !c.Step(Backward) {
		t.Fatal("step back to (0,0) should succeed")
	}
	if x, z := c.Tile(); x != 0 || z != 0 {
		t.Fatalf("tile = (%d,%d), want (0,0)", x, z)
	}
}

func TestTurnCameraTurn(t *testing.T) {
	g := corridor(t)
	c, err := NewTurnCamera(g, 0, 0, North)
	if err != nil {
		t.Fatal(err)
	}
	c.StepDuration = 0

	want := []Heading{East, South, West, North}
	for i, h := range want {
		c.Turn(true)
		if c.Heading() != h {
			t.Fatalf("turn %d: heading %v, want %v", i, c.Heading(), h)
		}
	}
	c.Turn(false)
	if c.Heading() != West || c.Yaw() != West.Yaw() {
		t.Fatalf("left turn: heading %v yaw %v", c.Heading(), c.Yaw())
	}
}

func TestTurnCameraInterpolation(t *testing.T) {
	g := corridor(t)
	c, err := NewTurnCamera(g, 0, 0, East)
	if err != nil {
		t.Fatal(err)
	}

	if !c.Step(Forward) {
		t.Fatal("step east should succeed")
	}
	if !c.Moving() {
		t.Fatal("expected animation in flight")
	}
	// Input during the move is ignored
	if c.Step(Forward) || c.Turn(true) {
		t.Fatal("moves must be rejected while animating")
	}

	c.Update(DefaultStepDuration / 2)
	mid := world.TileCenter(0, 0).Add(world.TileCenter(1, 0)).Mul(0.5)
	if !vecNear(c.Eye(), mid) {
		t.Fatalf("halfway eye = %v, want %v", c.Eye(), mid)
	}

	c.Update(DefaultStepDuration)
	if c.Moving() {
		t.Fatal("animation should be finished")
	}
	if !vecNear(c.Eye(), world.TileCenter(1, 0)) {
		t.Fatalf("final eye = %v", c.Eye())
	}

	c.Turn(true)
	c.Update(DefaultStepDuration / 2)
	if got, want := c.Yaw(), East.Yaw()+45; mgl32.Abs(got-want) > eps {
		t.Fatalf("halfway yaw = %v, want %v", got, want)
	}
	c.Update(DefaultStepDuration)
	if c.Yaw() != South.Yaw() {
		t.Fatalf("final yaw = %v, want %v", c.Yaw(), South.Yaw())
	}
}

func TestTurnCameraViewFacesHeading(t *testing.T) {
	g := corridor(t)
	c, err := NewTurnCamera(g, 0, 0, South)
	if err != nil {
		t.Fatal(err)
	}
	ahead := c.Eye().Add(mgl32.Vec3{0, 0, 1})
	v := c.ViewMatrix().Mul4x1(ahead.Vec4(1)).Vec3()
	if !vecNear(v, mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("south tile in view space = %v", v)
	}
}

func TestHeadingFromYaw(t *testing.T) {
	tests := []struct {
		yaw  float32
		want Heading
	}{
		{-90, North},
		{0, East},
		{80, South},
		{180, West},
		{-170, West},
		{270, North},
	}
	for _, tt := range tests {
		if got := HeadingFromYaw(tt.yaw); got != tt.want {
			t.Errorf("HeadingFromYaw(%v) = %v, want %v", tt.yaw, got, tt.want)
		}
	}
}

func TestNearestWalkable(t *testing.T) {
	g := corridor(t)
	x, z, err := NearestWalkable(g, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Occupied(x, z) || (x-1)*(x-1)+(z-1)*(z-1) != 1 {
		t.Fatalf("nearest = (%d,%d)", x, z)
	}

	x, z = TileAt(mgl32.Vec3{3.9, 1.5, 0.8})
	if x != 2 || z != 0 {
		t.Fatalf("TileAt = (%d,%d), want (2,0)", x, z)
	}

	empty, err := world.ParseGrid("..", "..")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := NearestWalkable(empty, 0, 0); !errors.Is(err, ErrNoWalkable) {
		t.Fatalf("err = %v, want ErrNoWalkable", err)
	}
}

func TestTurnCameraAhead(t *testing.T) {
	g := corridor(t)
	c, err := NewTurnCamera(g, 0, 1, East)
	if err != nil {
		t.Fatal(err)
	}
	if x, z, ok := c.Ahead(); x != 1 || z != 1 || ok {
		t.Fatalf("Ahead = (%d,%d,%v), want blocked (1,1)", x, z, ok)
	}
	c.StepDuration = 0
	c.Turn(false)
	if x, z, ok := c.Ahead(); x != 0 || z != 0 || !ok {
		t.Fatalf("Ahead = (%d,%d,%v), want walkable (0,0)", x, z, ok)
	}
}
