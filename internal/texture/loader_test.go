package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type recordingTarget struct {
	uploads []*image.RGBA
}

func (r *recordingTarget) Upload(img *image.RGBA) {
	r.uploads = append(r.uploads, img)
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// drain pumps until nothing is pending or the deadline passes.
func drain(t *testing.T, l *Loader) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for l.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("%d requests still pending", l.Pending())
		}
		l.Pump(0)
		time.Sleep(time.Millisecond)
	}
}

func TestLoaderUploadsDecodedImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 4, 2)
	writePNG(t, dir, "b.png", 8, 8)

	l := NewLoader(Options{Dir: dir, Workers: 2})
	defer l.Shutdown()

	var a, b recordingTarget
	if !l.Load("a.png", &a) || !l.Load("b.png", &b) {
		t.Fatalf("Load rejected a request below the limit")
	}
	drain(t, l)

	if len(a.uploads) != 1 || len(b.uploads) != 1 {
		t.Fatalf("uploads a=%d b=%d, want 1 each", len(a.uploads), len(b.uploads))
	}
	if got := a.uploads[0].Bounds().Size(); got != (image.Point{4, 2}) {
		t.Errorf("a.png size = %v, want 4x2", got)
	}
	if got := b.uploads[0].Bounds().Size(); got != (image.Point{8, 8}) {
		t.Errorf("b.png size = %v, want 8x8", got)
	}
	if px := a.uploads[0].RGBAAt(1, 1); px.R != 16 || px.G != 16 || px.B != 200 || px.A != 255 {
		t.Errorf("pixel (1,1) = %v", px)
	}
}

func TestLoaderUploadsOnlyFromPump(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 2, 2)

	l := NewLoader(Options{Dir: dir})
	defer l.Shutdown()

	var target recordingTarget
	l.Load("a.png", &target)
	time.Sleep(50 * time.Millisecond)
	if len(target.uploads) != 0 {
		t.Fatalf("target written before Pump")
	}
	drain(t, l)
	if len(target.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(target.uploads))
	}
}

func TestLoaderDropsOverLimit(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 2, 2)
	writePNG(t, dir, "b.png", 2, 2)
	writePNG(t, dir, "c.png", 2, 2)

	l := NewLoader(Options{Dir: dir, MaxRequests: 2})
	defer l.Shutdown()

	var a, b, c recordingTarget
	l.Load("a.png", &a)
	l.Load("b.png", &b)
	if l.Load("c.png", &c) {
		t.Errorf("third request should be dropped")
	}
	drain(t, l)

	if len(c.uploads) != 0 {
		t.Errorf("dropped request was uploaded")
	}
	if l.Requests() != 2 {
		t.Errorf("Requests = %d, want 2", l.Requests())
	}
}

func TestLoaderSharesDuplicateRequests(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "bricks.png", 2, 2)

	l := NewLoader(Options{Dir: dir, MaxRequests: 1})
	defer l.Shutdown()

	var left, right recordingTarget
	if !l.Load("bricks.png", &left) || !l.Load("bricks.png", &right) {
		t.Fatalf("duplicate name should not count against the limit")
	}
	drain(t, l)

	if l.Requests() != 1 {
		t.Errorf("Requests = %d, want 1", l.Requests())
	}
	if len(left.uploads) != 1 || len(right.uploads) != 1 {
		t.Fatalf("uploads left=%d right=%d, want 1 each", len(left.uploads), len(right.uploads))
	}
	if left.uploads[0] != right.uploads[0] {
		t.Errorf("duplicate targets should share one decoded image")
	}

	// A late duplicate gets the cached image immediately
	var late recordingTarget
	l.Load("bricks.png", &late)
	if len(late.uploads) != 1 {
		t.Errorf("late duplicate uploads = %d, want 1", len(late.uploads))
	}
}

func TestLoaderSkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(Options{Dir: dir})
	defer l.Shutdown()

	var broken, missing recordingTarget
	l.Load("broken.png", &broken)
	l.Load("missing.png", &missing)
	drain(t, l)

	if len(broken.uploads) != 0 || len(missing.uploads) != 0 {
		t.Errorf("failed fetches should not upload")
	}
}

func TestLoaderPumpLimit(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.png", "b.png", "c.png"} {
		writePNG(t, dir, n, 1, 1)
	}
	l := NewLoader(Options{Dir: dir})
	defer l.Shutdown()

	var targets [3]recordingTarget
	l.Load("a.png", &targets[0])
	l.Load("b.png", &targets[1])
	l.Load("c.png", &targets[2])

	deadline := time.Now().Add(5 * time.Second)
	for len(l.results) < 3 {
		if time.Now().After(deadline) {
			t.Fatal("results never arrived")
		}
		time.Sleep(time.Millisecond)
	}
	if n := l.Pump(1); n != 1 {
		t.Errorf("Pump(1) handled %d", n)
	}
	if l.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", l.Pending())
	}
	if n := l.Pump(0); n != 2 {
		t.Errorf("Pump(0) handled %d, want 2", n)
	}
}

func TestReadImageSizeLimit(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "big.png", 16, 16)

	_, err := ReadImage(filepath.Join(dir, "big.png"), 8)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
	if _, err := ReadImage(filepath.Join(dir, "big.png"), 0); err != nil {
		t.Errorf("no limit: %v", err)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	l := NewLoader(Options{Dir: t.TempDir()})
	l.Shutdown()
	l.Shutdown()
}
