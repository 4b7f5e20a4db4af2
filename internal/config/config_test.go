package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dungeon-viewer/internal/world"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("test", nil, envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
	if cfg.MaxRequests != 32 || cfg.MaxFileSize != 10<<20 {
		t.Fatalf("texture limits = %d/%d", cfg.MaxRequests, cfg.MaxFileSize)
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	env := envMap(map[string]string{
		"DUNGEON_WIDTH":  "9",
		"DUNGEON_LENGTH": "7",
		"DUNGEON_CAMERA": "turn",
		"DUNGEON_STEP":   "300ms",
		"DUNGEON_VSYNC":  "true",
	})
	cfg, err := load("test", []string{"-length", "11", "-tint", "0.5"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 9 {
		t.Errorf("Width = %d, want 9 from env", cfg.Width)
	}
	if cfg.Length != 11 {
		t.Errorf("Length = %d, want 11 from flag", cfg.Length)
	}
	if cfg.Camera != CameraTurn || cfg.StepDuration != 300*time.Millisecond || !cfg.VSync {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.TintStrength != 0.5 {
		t.Errorf("TintStrength = %v, want 0.5", cfg.TintStrength)
	}
}

func TestLoadEmptyEnvIgnored(t *testing.T) {
	cfg, err := load("test", nil, envMap(map[string]string{"DUNGEON_WIDTH": ""}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != Default().Width {
		t.Fatalf("Width = %d", cfg.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{"bad env int", nil, map[string]string{"DUNGEON_WORKERS": "many"}, "DUNGEON_WORKERS"},
		{"bad env duration", nil, map[string]string{"DUNGEON_STEP": "soon"}, "DUNGEON_STEP"},
		{"unknown flag", []string{"-bogus"}, nil, "bogus"},
		{"zero width", []string{"-width", "0"}, nil, "grid size"},
		{"tint range", []string{"-tint", "1.5"}, nil, "tint"},
		{"camera", []string{"-camera", "orbit"}, nil, "orbit"},
		{"workers", []string{"-workers", "0"}, nil, "workers"},
		{"generator", []string{"-generator", "maze"}, nil, "maze"},
		{"bad env seed", nil, map[string]string{"DUNGEON_SEED": "x"}, "DUNGEON_SEED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load("test", tt.args, envMap(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLayoutSkipsSizeCheck(t *testing.T) {
	cfg, err := load("test", []string{"-layout", "maps/a.txt", "-width", "0"}, envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout != "maps/a.txt" {
		t.Fatalf("Layout = %q", cfg.Layout)
	}
}

func TestSource(t *testing.T) {
	cfg, err := load("test", []string{"-generator", "caves", "-seed", "42", "-width", "20"}, envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := world.Source{Width: 20, Length: 5, Generator: world.GeneratorCaves, Seed: 42}
	if got := cfg.Source(); got != want {
		t.Fatalf("Source() = %+v, want %+v", got, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("DUNGEON_TEST_DOTENV=13\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DUNGEON_TEST_DOTENV") })
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DUNGEON_TEST_DOTENV"); got != "13" {
		t.Fatalf("DUNGEON_TEST_DOTENV = %q", got)
	}
}

func TestRenderSettings(t *testing.T) {
	t.Cleanup(func() {
		SetWireframeMode(false)
		SetFPSLimit(DefaultFPSLimit)
		SetTintStrength(DefaultTintStrength)
	})

	SetWireframeMode(false)
	if !ToggleWireframeMode() || !GetWireframeMode() {
		t.Fatal("toggle should enable wireframe")
	}
	if ToggleWireframeMode() {
		t.Fatal("second toggle should disable wireframe")
	}

	SetFPSLimit(-5)
	if got := GetFPSLimit(); got != 0 {
		t.Fatalf("negative limit = %d, want 0", got)
	}
	SetFPSLimit(5000)
	if got := GetFPSLimit(); got != 1000 {
		t.Fatalf("limit = %d, want clamp 1000", got)
	}

	SetTintStrength(2)
	if got := GetTintStrength(); got != 1 {
		t.Fatalf("tint = %v, want 1", got)
	}

	cfg := Default()
	cfg.FPSLimit = 60
	cfg.TintStrength = 0.75
	cfg.Apply()
	if GetFPSLimit() != 60 || GetTintStrength() != 0.75 {
		t.Fatalf("Apply did not copy runtime values")
	}
}

func TestDefaultGridSize(t *testing.T) {
	if d := Default(); d.Width != 5 || d.Length != 5 {
		t.Fatalf("default grid = %dx%d, want 5x5", d.Width, d.Length)
	}
}
