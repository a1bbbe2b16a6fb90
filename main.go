package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/renderer"
	"github.com/pthm-cable/trophic/sim"
	"github.com/pthm-cable/trophic/systems"
	"github.com/pthm-cable/trophic/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Log window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = use settings file)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Any malformed input is fatal before the step loop begins.
	grid, err := config.ReadGrid(cfg.Inputs.Grid)
	if err != nil {
		slog.Error("failed to load grid file", "error", err)
		os.Exit(1)
	}
	settings, err := config.ReadSettings(cfg.Inputs.Settings)
	if err != nil {
		slog.Error("failed to load settings file", "error", err)
		os.Exit(1)
	}
	table, counts, err := config.ReadGenotypes(cfg.Inputs.Genotypes)
	if err != nil {
		slog.Error("failed to load genotype table", "error", err)
		os.Exit(1)
	}

	domain, err := systems.NewDomain(grid.XLength, grid.YLength, grid.NX, grid.NY)
	if err != nil {
		slog.Error("invalid domain", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	steps := settings.NumSteps
	if *maxSteps > 0 {
		steps = *maxSteps
	}
	dir := cfg.Output.Dir
	if *outputDir != "" {
		dir = *outputDir
	}

	engine, err := sim.New(domain, table, counts, sim.Options{
		Seed:          rngSeed,
		TotalCarbon:   settings.TotalCarbon,
		Steps:         steps,
		PrintInterval: settings.PrintInterval,
		LogStats:      *logStats,
	})
	if err != nil {
		slog.Error("failed to build world", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if output != nil {
		if err := cfg.WriteYAML(filepath.Join(dir, "config.yaml")); err != nil {
			slog.Warn("failed to write config copy", "error", err)
		}
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"steps", steps,
		"print_interval", settings.PrintInterval,
		"species", table.Len(),
		"cells", domain.NumCells(),
		"headless", *headless,
	)

	if *headless {
		if err := engine.Run(output); err != nil {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Trophic")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	viewer := renderer.NewViewer(int32(cfg.Screen.Width), int32(cfg.Screen.Height), engine)

	for !rl.WindowShouldClose() {
		if !viewer.Paused() {
			for i := 0; i < viewer.StepsPerFrame() && !engine.Done(); i++ {
				if err := engine.Advance(output); err != nil {
					slog.Error("run failed", "error", err)
					os.Exit(1)
				}
			}
		}
		viewer.Draw(engine)
	}
}
