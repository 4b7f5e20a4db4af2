package world

// Generate builds the default dungeon layout of the given size.
//
// A tile is occupied when it lies in the 4x4 starting room at the origin,
// or on a corridor line: every 4th and every 3rd x column and every 3rd z row.
// The result depends only on the dimensions.
func Generate(width, length int) (*Grid, error) {
	g, err := newGrid(width, length)
	if err != nil {
		return nil, err
	}
	for x := range width {
		for z := range length {
			g.set(x, z, occupiedByRule(x, z))
		}
	}
	return g, nil
}

func occupiedByRule(x, z int) bool {
	if x < 4 && z < 4 {
		return true
	}
	return x%4 == 0 || z%3 == 0 || x%3 == 0
}
