package minimap

import "dungeon-viewer/internal/world"

// Passage is a bitmask of the open sides of a tile
type Passage uint8

const (
	West  Passage = 1 << iota // -x, no left wall
	East                      // +x, no right wall
	North                     // -z, no front wall
	South                     // +z, no back wall
)

// Indexed by Passage; north is up on screen
var passageGlyphs = [16]rune{
	0:                          '▪',
	West:                       '╴',
	East:                       '╶',
	West | East:                '─',
	North:                      '╵',
	North | West:               '┘',
	North | East:               '└',
	North | West | East:        '┴',
	South:                      '╷',
	South | West:               '┐',
	South | East:               '┌',
	South | West | East:        '┬',
	North | South:              '│',
	North | South | West:       '┤',
	North | South | East:       '├',
	North | South | West | East: '┼',
}

// Glyph draws the passages of a tile as a box-drawing rune
func Glyph(p Passage) rune {
	return passageGlyphs[p&0xf]
}

// EmptyGlyph marks unoccupied tiles
const EmptyGlyph = ' '

var wallPassage = map[world.Orientation]Passage{
	world.OrientationLeft:  West,
	world.OrientationRight: East,
	world.OrientationFront: North,
	world.OrientationBack:  South,
}

// Tile is a grid coordinate
type Tile struct{ X, Z int }

// Passages derives the open sides of every occupied tile from the surfaces
// the dungeon emitted. Tiles missing from the result are empty.
func Passages(d *world.Dungeon) map[Tile]Passage {
	out := make(map[Tile]Passage)
	for _, b := range d.Batches() {
		wall := wallPassage[b.Orientation]
		for _, s := range b.Surfaces {
			t := Tile{s.TileX, s.TileZ}
			p, ok := out[t]
			if !ok {
				p = West | East | North | South
			}
			out[t] = p &^ wall
		}
	}
	return out
}
