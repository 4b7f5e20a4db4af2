// Command dungeon-map shows the dungeon grid and its emitted faces in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"dungeon-viewer/internal/config"
	"dungeon-viewer/internal/minimap"
	"dungeon-viewer/internal/telemetry"
	"dungeon-viewer/internal/world"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	printOnly, args, err := splitPrintFlag(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cfg, err := config.Load(os.Args[0], args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "  -print\n    \twrite the map to stdout instead of opening the terminal view")
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	grid, err := world.Open(cfg.Source())
	if err != nil {
		log.Fatalf("load grid: %v", err)
	}
	d := world.Build(ctx, grid)

	fmt.Println(minimap.Summary(grid, d))
	if printOnly {
		fmt.Println(minimap.Render(grid, d))
		return
	}

	if err := run(minimap.New(grid, d)); err != nil {
		log.Fatalf("terminal: %v", err)
	}
}

func run(m *minimap.Map) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	for {
		m.Draw(screen)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if m.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			// Screen finalized
			return nil
		}
	}
}

// splitPrintFlag pulls -print out of args; everything else is the shared
// config. Accepts the flag package forms -print, --print and -print=<bool>.
func splitPrintFlag(args []string) (bool, []string, error) {
	printOnly := false
	rest := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "print" {
			rest = append(rest, a)
			continue
		}
		if !hasValue {
			printOnly = true
			continue
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			return false, nil, fmt.Errorf("invalid value %q for flag -print: %w", value, err)
		}
		printOnly = v
	}
	return printOnly, rest, nil
}
