package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"dungeon-viewer/internal/world"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every flag name to form its environment variable
const EnvPrefix = "DUNGEON_"

// Camera modes
const (
	CameraFree = "free"
	CameraTurn = "turn"
)

// Config is the startup configuration of the viewer
type Config struct {
	Width  int
	Length int
	Layout string // optional layout file; overrides Width/Length

	// Generator is rule or caves; Seed only affects caves
	Generator string
	Seed      int64

	TexturesDir  string
	Workers      int
	MaxRequests  int
	MaxFileSize  int64
	TintStrength float64

	WindowWidth  int
	WindowHeight int
	VSync        bool
	FPSLimit     int
	Camera       string
	StepDuration time.Duration

	SlowFrame time.Duration
}

// Default returns the configuration used when no flags or env vars are set
func Default() Config {
	return Config{
		Width:        5,
		Length:       5,
		Generator:    world.GeneratorRule,
		Seed:         1,
		TexturesDir:  "assets/textures",
		Workers:      4,
		MaxRequests:  32,
		MaxFileSize:  10 << 20,
		TintStrength: DefaultTintStrength,
		WindowWidth:  900,
		WindowHeight: 600,
		VSync:        false,
		FPSLimit:     DefaultFPSLimit,
		Camera:       CameraFree,
		StepDuration: 150 * time.Millisecond,
		SlowFrame:    16 * time.Millisecond,
	}
}

// LoadDotEnv reads .env files into the process environment. A missing file
// is not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load parses args on top of defaults taken from DUNGEON_* environment
// variables. Flags win over the environment.
func Load(name string, args []string) (Config, error) {
	return load(name, args, os.LookupEnv)
}

func load(name string, args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	env := envDefaults{lookup: lookup}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", env.intVar("WIDTH", cfg.Width), "generated grid width in tiles")
	fs.IntVar(&cfg.Length, "length", env.intVar("LENGTH", cfg.Length), "generated grid length in tiles")
	fs.StringVar(&cfg.Layout, "layout", env.stringVar("LAYOUT", cfg.Layout), "read the grid from a layout file instead of generating it")
	fs.StringVar(&cfg.Generator, "generator", env.stringVar("GENERATOR", cfg.Generator), "grid generator: rule or caves")
	fs.Int64Var(&cfg.Seed, "seed", env.int64Var("SEED", cfg.Seed), "seed for the caves generator")

	fs.StringVar(&cfg.TexturesDir, "textures", env.stringVar("TEXTURES", cfg.TexturesDir), "directory holding surface textures")
	fs.IntVar(&cfg.Workers, "workers", env.intVar("WORKERS", cfg.Workers), "texture fetch goroutines")
	fs.IntVar(&cfg.MaxRequests, "max-requests", env.intVar("MAX_REQUESTS", cfg.MaxRequests), "texture requests accepted before new ones are dropped")
	fs.Int64Var(&cfg.MaxFileSize, "max-file-size", env.int64Var("MAX_FILE_SIZE", cfg.MaxFileSize), "largest texture file in bytes")
	fs.Float64Var(&cfg.TintStrength, "tint", env.floatVar("TINT", cfg.TintStrength), "orientation color mixed over textures (0-1)")

	fs.IntVar(&cfg.WindowWidth, "window-width", env.intVar("WINDOW_WIDTH", cfg.WindowWidth), "initial window width")
	fs.IntVar(&cfg.WindowHeight, "window-height", env.intVar("WINDOW_HEIGHT", cfg.WindowHeight), "initial window height")
	fs.BoolVar(&cfg.VSync, "vsync", env.boolVar("VSYNC", cfg.VSync), "wait for vertical sync on swap")
	fs.IntVar(&cfg.FPSLimit, "fps", env.intVar("FPS", cfg.FPSLimit), "frame cap, 0 for uncapped")
	fs.StringVar(&cfg.Camera, "camera", env.stringVar("CAMERA", cfg.Camera), "starting camera: free or turn")
	fs.DurationVar(&cfg.StepDuration, "step", env.durationVar("STEP", cfg.StepDuration), "turn-based step and turn duration")
	fs.DurationVar(&cfg.SlowFrame, "slow-frame", env.durationVar("SLOW_FRAME", cfg.SlowFrame), "log profiling buckets for frames slower than this")

	if err := env.err(); err != nil {
		return cfg, err
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the viewer cannot start with
func (c Config) Validate() error {
	if c.Layout == "" && (c.Width <= 0 || c.Length <= 0) {
		return fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Length)
	}
	if c.Generator != world.GeneratorRule && c.Generator != world.GeneratorCaves {
		return fmt.Errorf("unknown generator %q (want %s or %s)", c.Generator, world.GeneratorRule, world.GeneratorCaves)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers %d must be positive", c.Workers)
	}
	if c.MaxRequests <= 0 {
		return fmt.Errorf("max-requests %d must be positive", c.MaxRequests)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max-file-size %d must be positive", c.MaxFileSize)
	}
	if c.TintStrength < 0 || c.TintStrength > 1 {
		return fmt.Errorf("tint %g outside [0, 1]", c.TintStrength)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.Camera != CameraFree && c.Camera != CameraTurn {
		return fmt.Errorf("unknown camera %q (want %s or %s)", c.Camera, CameraFree, CameraTurn)
	}
	if c.StepDuration <= 0 {
		return fmt.Errorf("step %v must be positive", c.StepDuration)
	}
	return nil
}

// Source describes the grid to open
func (c Config) Source() world.Source {
	return world.Source{
		Layout:    c.Layout,
		Width:     c.Width,
		Length:    c.Length,
		Generator: c.Generator,
		Seed:      c.Seed,
	}
}

// Apply copies the runtime-adjustable values into the render settings
func (c Config) Apply() {
	SetFPSLimit(c.FPSLimit)
	SetTintStrength(float32(c.TintStrength))
}

// envDefaults resolves DUNGEON_* variables and remembers the first bad value
type envDefaults struct {
	lookup func(string) (string, bool)
	first  error
}

func (e *envDefaults) raw(key string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envDefaults) fail(key, value string, err error) {
	if e.first == nil {
		e.first = fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, value, err)
	}
}

func (e *envDefaults) err() error { return e.first }

func (e *envDefaults) stringVar(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *envDefaults) intVar(key string, def int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envDefaults) int64Var(key string, def int64) int64 {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envDefaults) floatVar(key string, def float64) float64 {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *envDefaults) boolVar(key string, def bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *envDefaults) durationVar(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}
