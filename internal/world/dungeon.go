package world

import (
	"context"
	"time"

	"dungeon-viewer/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// Dungeon holds the surfaces extruded from a grid, grouped by orientation.
// It is immutable once built.
type Dungeon struct {
	width    int
	length   int
	surfaces [OrientationCount][]Surface
}

// Batch is every surface sharing one orientation, and so one texture.
type Batch struct {
	Orientation Orientation
	Surfaces    []Surface
}

// Build extrudes every occupied tile of g into surfaces.
//
// A wall is emitted on a side only when the neighbor across it is empty or
// outside the grid. Top and bottom are always emitted; there is no vertical
// neighbor check.
func Build(ctx context.Context, g *Grid) *Dungeon {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.build")
	defer span.End()
	start := time.Now()

	d := &Dungeon{width: g.Width(), length: g.Length()}
	for x := 0; x < g.Width(); x++ {
		for z := 0; z < g.Length(); z++ {
			if !g.Occupied(x, z) {
				continue
			}
			if !g.Occupied(x-1, z) {
				d.add(newSurface(OrientationLeft, x, z))
			}
			if !g.Occupied(x+1, z) {
				d.add(newSurface(OrientationRight, x, z))
			}
			if !g.Occupied(x, z-1) {
				d.add(newSurface(OrientationFront, x, z))
			}
			if !g.Occupied(x, z+1) {
				d.add(newSurface(OrientationBack, x, z))
			}
			d.add(newSurface(OrientationTop, x, z))
			d.add(newSurface(OrientationBottom, x, z))
		}
	}

	counts := d.Counts()
	span.SetAttributes(
		attribute.Int("dungeon.width", d.width),
		attribute.Int("dungeon.length", d.length),
		attribute.Int("dungeon.occupied", counts[OrientationTop]),
		attribute.Int("dungeon.surfaces", d.Len()),
		attribute.Int64("dungeon.build_us", time.Since(start).Microseconds()),
	)
	return d
}

func (d *Dungeon) add(s Surface) {
	d.surfaces[s.Orientation] = append(d.surfaces[s.Orientation], s)
}

// Width returns the grid width the dungeon was built from.
func (d *Dungeon) Width() int { return d.width }

// Length returns the grid length the dungeon was built from.
func (d *Dungeon) Length() int { return d.length }

// Surfaces returns the surfaces of one orientation in build order.
// The slice is shared and must not be modified.
func (d *Dungeon) Surfaces(o Orientation) []Surface {
	if o < 0 || o >= OrientationCount {
		return nil
	}
	return d.surfaces[o]
}

// Counts returns the number of surfaces per orientation.
func (d *Dungeon) Counts() [OrientationCount]int {
	var out [OrientationCount]int
	for o := range d.surfaces {
		out[o] = len(d.surfaces[o])
	}
	return out
}

// Len returns the total number of surfaces.
func (d *Dungeon) Len() int {
	n := 0
	for o := range d.surfaces {
		n += len(d.surfaces[o])
	}
	return n
}

// Batches returns one batch per orientation in render order.
// Empty orientations are kept so texture binds follow a fixed sequence.
func (d *Dungeon) Batches() []Batch {
	out := make([]Batch, 0, OrientationCount)
	for _, o := range Orientations() {
		out = append(out, Batch{Orientation: o, Surfaces: d.surfaces[o]})
	}
	return out
}

// TileSurfaces returns the orientations emitted for tile (x, z).
func (d *Dungeon) TileSurfaces(x, z int) []Orientation {
	var out []Orientation
	for _, o := range Orientations() {
		for _, s := range d.surfaces[o] {
			if s.TileX == x && s.TileZ == z {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
