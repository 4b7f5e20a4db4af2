package graphics

import "testing"

func TestBuildFontAtlas(t *testing.T) {
	atlas, err := BuildFontAtlas(DefaultFont, 16)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range "AZaz09~" {
		if _, ok := atlas.Characters[r]; !ok {
			t.Fatalf("glyph %q missing", r)
		}
	}
	if atlas.AtlasH&(atlas.AtlasH-1) != 0 {
		t.Fatalf("atlas height %d is not a power of two", atlas.AtlasH)
	}
	for r, fc := range atlas.Characters {
		if fc.AtlasX+fc.Width > float32(atlas.AtlasW) || fc.AtlasY+fc.Height > float32(atlas.AtlasH) {
			t.Fatalf("glyph %q at (%v,%v) overflows the atlas", r, fc.AtlasX, fc.AtlasY)
		}
	}
}

func TestFontAtlasLayout(t *testing.T) {
	atlas, err := BuildFontAtlas(DefaultFont, 16)
	if err != nil {
		t.Fatal(err)
	}

	// Monospace: every glyph advances the same
	w1, _ := atlas.Measure("i", 1)
	w4, _ := atlas.Measure("iWiW", 1)
	if w1 <= 0 || w4 != 4*w1 {
		t.Fatalf("widths %v and %v", w1, w4)
	}
	if w, _ := atlas.Measure("i", 2); w != 2*w1 {
		t.Fatalf("scaled width = %v", w)
	}

	// Spaces advance but draw nothing
	if n := len(atlas.Vertices("a b", 0, 0, 1)); n != 2*6*4 {
		t.Fatalf("vertex floats = %d, want two glyph quads", n)
	}
	if n := len(atlas.Vertices("   ", 0, 0, 1)); n != 0 {
		t.Fatalf("blank line produced %d floats", n)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 3: 4, 64: 64, 65: 128} {
		if got := nextPowerOfTwo(in); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
