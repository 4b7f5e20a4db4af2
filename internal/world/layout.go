package world

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ParseGrid builds a grid from hand-written rows. Each row is one x column,
// each rune one z cell: '#' or '1' is occupied, '.', '0' or ' ' is empty.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyLayout
	}
	length := utf8.RuneCountInString(rows[0])
	if length == 0 {
		return nil, ErrEmptyLayout
	}
	for _, row := range rows[1:] {
		if utf8.RuneCountInString(row) != length {
			return nil, ErrRaggedLayout
		}
	}

	g, err := newGrid(len(rows), length)
	if err != nil {
		return nil, err
	}
	for x, row := range rows {
		z := 0
		for _, r := range row {
			switch r {
			case '#', '1':
				g.set(x, z, true)
			case '.', '0', ' ':
			default:
				return nil, fmt.Errorf("layout row %d col %d: unexpected %q", x, z, r)
			}
			z++
		}
	}
	return g, nil
}

// LoadGrid reads a layout file in ParseGrid format.
// Empty lines and lines starting with "//" are skipped; a line of spaces
// is an all-empty column.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	var rows []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}

	g, err := ParseGrid(rows...)
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return g, nil
}

// Generators accepted by Source
const (
	GeneratorRule  = "rule"
	GeneratorCaves = "caves"
)

// Source says where a grid comes from: a layout file when Layout is set,
// otherwise the named generator at Width x Length
type Source struct {
	Layout    string
	Width     int
	Length    int
	Generator string
	Seed      int64
}

// Open loads or generates the grid described by src. An empty Generator
// means GeneratorRule.
func Open(src Source) (*Grid, error) {
	if src.Layout != "" {
		return LoadGrid(src.Layout)
	}

	var (
		g   *Grid
		err error
	)
	switch src.Generator {
	case "", GeneratorRule:
		g, err = Generate(src.Width, src.Length)
	case GeneratorCaves:
		g, err = GenerateCaves(src.Width, src.Length, src.Seed, DefaultCaveThreshold)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, src.Generator)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %dx%d: %w", src.Width, src.Length, err)
	}
	return g, nil
}
