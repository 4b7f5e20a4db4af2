package world

import (
	"encoding/binary"
	"errors"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrInvalidSize  = errors.New("grid dimensions must be positive")
	ErrEmptyLayout  = errors.New("layout has no rows")
	ErrRaggedLayout = errors.New("layout rows differ in length")

	ErrUnknownGenerator = errors.New("unknown generator")
)

// Grid is the 2D tile occupancy map of a dungeon level.
// Cells are addressed (x, z); x runs across Width and z across Length.
type Grid struct {
	width  int
	length int
	cells  []bool
}

func newGrid(width, length int) (*Grid, error) {
	if width <= 0 || length <= 0 {
		return nil, ErrInvalidSize
	}
	return &Grid{
		width:  width,
		length: length,
		cells:  make([]bool, width*length),
	}, nil
}

// Width returns the number of tiles along x.
func (g *Grid) Width() int { return g.width }

// Length returns the number of tiles along z.
func (g *Grid) Length() int { return g.length }

// InBounds reports whether (x, z) addresses a cell of the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.length
}

// Occupied reports whether the tile at (x, z) has a floor.
// Coordinates outside the grid are empty.
func (g *Grid) Occupied(x, z int) bool {
	if !g.InBounds(x, z) {
		return false
	}
	return g.cells[g.index(x, z)]
}

func (g *Grid) set(x, z int, occupied bool) {
	g.cells[g.index(x, z)] = occupied
}

func (g *Grid) index(x, z int) int {
	return x*g.length + z
}

// OccupiedCount returns the number of occupied tiles.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Fingerprint hashes the dimensions and occupancy of the grid.
func (g *Grid) Fingerprint() uint64 {
	h := xxhash.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[0:8], uint64(g.width))
	binary.LittleEndian.PutUint64(dims[8:16], uint64(g.length))
	_, _ = h.Write(dims[:])

	row := make([]byte, g.length)
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.length; z++ {
			row[z] = 0
			if g.cells[g.index(x, z)] {
				row[z] = 1
			}
		}
		_, _ = h.Write(row)
	}
	return h.Sum64()
}

// String renders one line per x column, '#' for occupied and '.' for empty.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.width * (g.length + 1))
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.length; z++ {
			if g.cells[g.index(x, z)] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if x < g.width-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
