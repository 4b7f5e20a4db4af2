package world

import "math"

// Cave generator tuning
const (
	caveScale = 0.18

	// DefaultCaveThreshold keeps roughly half the cells
	DefaultCaveThreshold = 0.5
)

// Broad chambers plus two finer layers of wall detail; weights sum to 1
var caveOctaves = [...]struct{ freq, weight float64 }{
	{caveScale, 4.0 / 7},
	{caveScale * 2, 2.0 / 7},
	{caveScale * 4, 1.0 / 7},
}

// GenerateCaves builds an organic layout from 2D value noise. Cells at or
// above threshold are open, the 4x4 starting room always is, and pockets not
// reachable from the starting room are filled in. Same inputs, same grid.
func GenerateCaves(width, length int, seed int64, threshold float64) (*Grid, error) {
	g, err := newGrid(width, length)
	if err != nil {
		return nil, err
	}
	for x := range width {
		for z := range length {
			open := x < 4 && z < 4
			if !open {
				open = caveNoise(x, z, seed) >= threshold
			}
			g.set(x, z, open)
		}
	}
	keepReachable(g, 0, 0)
	return g, nil
}

// keepReachable clears every occupied cell not 4-connected to (x, z)
func keepReachable(g *Grid, x, z int) {
	seen := make([]bool, len(g.cells))
	stack := [][2]int{{x, z}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !g.Occupied(c[0], c[1]) {
			continue
		}
		i := g.index(c[0], c[1])
		if seen[i] {
			continue
		}
		seen[i] = true
		stack = append(stack, [2]int{c[0] - 1, c[1]}, [2]int{c[0] + 1, c[1]}, [2]int{c[0], c[1] - 1}, [2]int{c[0], c[1] + 1})
	}
	for i := range g.cells {
		if !seen[i] {
			g.cells[i] = false
		}
	}
}

// hash2 is a SplitMix64 finalizer over the lattice point and seed
func hash2(x, z, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// latticeValue maps a lattice point to [0,1]
func latticeValue(x, z, seed int64) float64 {
	return float64(hash2(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// caveNoise is how open cell (x, z) is, in [0,1]
func caveNoise(x, z int, seed int64) float64 {
	n := 0.0
	for i, o := range caveOctaves {
		n += o.weight * smoothLattice(float64(x)*o.freq, float64(z)*o.freq, seed+int64(i)*131)
	}
	return min(n, 1)
}

// smoothLattice blends the four surrounding lattice values with a quintic ease
func smoothLattice(x, z float64, seed int64) float64 {
	fx, fz := math.Floor(x), math.Floor(z)
	ix, iz := int64(fx), int64(fz)
	tx, tz := ease(x-fx), ease(z-fz)

	row := func(dz int64) float64 {
		a := latticeValue(ix, iz+dz, seed)
		return a + tx*(latticeValue(ix+1, iz+dz, seed)-a)
	}
	near := row(0)
	return near + tz*(row(1)-near)
}

func ease(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
