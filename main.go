package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-photon-tracer/pkg/core"
	"github.com/df07/go-photon-tracer/pkg/runner"
	"github.com/df07/go-photon-tracer/pkg/scene"
)

// Config holds the command line settings
type Config struct {
	SceneType      string
	Photons        int
	Workers        int
	Seed           int64
	MaxTransitions int
	Tracks         int
	History        bool
	Histogram      bool
	Help           bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	fmt.Println("Starting Photon Tracer...")

	sc, err := createScene(config.SceneType)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s scene: %s\n", sc.Name, sc.Description)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := runner.Run(ctx, sc.Setup, buildOptions(config, sc))
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Print(result.Report())

	if config.Tracks > 0 {
		fmt.Printf("Tracks kept: %d\n", result.Tracks.Len())
	}
	if config.History {
		fmt.Printf("History logs kept: %d\n", len(result.Stats.History))
	}

	if config.Histogram {
		filename, err := saveHistogram(result, config.SceneType)
		if err != nil {
			fmt.Printf("Error saving histogram: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Hit time histogram saved as %s\n", filename)
	}
}

func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "slab", "Scene type: 'slab', 'mesh' or 'sphere'")
	flag.IntVar(&config.Photons, "photons", 10000, "Number of photons to trace")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&config.Seed, "seed", 1, "Random seed; worker i uses seed+i")
	flag.IntVar(&config.MaxTransitions, "max-trans", 500, "Maximum transport loop iterations per photon")
	flag.IntVar(&config.Tracks, "tracks", 0, "Build display tracks, keeping at most this many")
	flag.BoolVar(&config.History, "history", false, "Log the event history of every photon")
	flag.BoolVar(&config.Histogram, "histogram", false, "Save a hit time histogram PNG")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func showHelp() {
	fmt.Println("Photon Tracer")
	fmt.Println("Usage: photon-tracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-8s - %s\n", info.Name, info.Description)
	}
	fmt.Println()
	fmt.Println("Histograms are saved to output/<scene_type>/hits_<timestamp>.png")
}

// createScene builds the named scene
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("no scene given")
	}
	return scene.New(sceneType)
}

// buildOptions applies the command line settings on top of the scene's
// tracer configuration
func buildOptions(config Config, sc *scene.Scene) runner.Options {
	opts := runner.DefaultOptions()
	opts.Photons = config.Photons
	opts.Workers = config.Workers
	opts.Seed = config.Seed
	opts.Logger = core.NewDefaultLogger()

	opts.Tracer = sc.Config
	opts.Tracer.MaxTransitions = config.MaxTransitions
	opts.Tracer.LogHistory = config.History
	if config.Tracks > 0 {
		opts.Tracer.Tracks.Build = true
		opts.Tracer.Tracks.MaxTracks = config.Tracks
	}
	return opts
}

func saveHistogram(result *runner.Result, sceneType string) (string, error) {
	outputDir := filepath.Join("output", sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("hits_%s.png", timestamp))
	if err := result.SaveHitTimeHistogram(filename, 50); err != nil {
		return "", err
	}
	return filename, nil
}
