package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"runtime"

	"dungeon-viewer/internal/config"
	"dungeon-viewer/internal/game"
	"dungeon-viewer/internal/input"
	"dungeon-viewer/internal/telemetry"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.Apply()

	ctx := context.Background()
	setupTelemetry(ctx)

	if err := glfw.Init(); err != nil {
		closer.Fatalln("glfw init:", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg)
	if err != nil {
		closer.Fatalln(err)
	}
	defer window.Destroy()

	fbWidth, fbHeight := game.FramebufferSize(window)
	session, err := game.NewSession(ctx, cfg, fbWidth, fbHeight)
	if err != nil {
		closer.Fatalln(err)
	}
	defer session.Cleanup()

	// Workers are safe to stop from the signal goroutine; GL objects are not
	closer.Bind(session.Loader.Shutdown)

	im := input.NewInputManager()
	app := game.NewApp(window, im, session, cfg)
	game.SetupInputHandlers(app)

	log.Printf("controls: WASD move, Space/LShift up/down, Q/E turn, F capture mouse, C camera, G wireframe, V profiling, Esc quit")
	app.Run()
}

func setupTelemetry(ctx context.Context) {
	if !telemetry.Enabled() {
		return
	}
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		return
	}
	closer.Bind(func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	})
}
