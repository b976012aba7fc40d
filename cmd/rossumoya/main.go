// Command rossumoya runs the island ecosystem simulation: it loads a terrain
// map and an initial population, simulates N years and reports per-year
// population counts, optionally exporting density frames, a movie, a CSV
// count log or a live terminal view.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/rossumoya/internal/report"
	"github.com/appengine-ltd/rossumoya/internal/sim"
	"github.com/appengine-ltd/rossumoya/internal/ui"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	yearStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	herbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	carnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// demoGeography and demoPopulation mirror the classic single-island teaching
// setup so the binary does something sensible without input files.
const demoGeography = `OOOOOOOOO
OJJSSSDDO
OJJSSMMDO
OJSSSMMDO
OJJJSSDDO
OOJJSSDOO
OOOOOOOOO`

func demoPopulation() []sim.PopulationEntry {
	herbs := make([]sim.AnimalDef, 50)
	for i := range herbs {
		herbs[i] = sim.AnimalDef{Species: "Herbivore", Age: 5, Weight: 20}
	}
	carns := make([]sim.AnimalDef, 8)
	for i := range carns {
		carns[i] = sim.AnimalDef{Species: "Carnivore", Age: 5, Weight: 20}
	}
	return []sim.PopulationEntry{
		{Loc: sim.Loc{Row: 2, Col: 2}, Animals: herbs},
		{Loc: sim.Loc{Row: 4, Col: 4}, Animals: carns},
	}
}

func main() {
	var (
		mapPath     string
		popPath     string
		years       int
		seed        int64
		framesDir   string
		moviePath   string
		logPath     string
		tui         bool
		showVersion bool
	)

	flag.StringVar(&mapPath, "map", "", "terrain map file (token grid; built-in demo island if omitted)")
	flag.StringVar(&popPath, "pop", "", "initial population JSON file (demo population if omitted)")
	flag.IntVar(&years, "years", 100, "number of years to simulate")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 picks a time-based seed)")
	flag.StringVar(&framesDir, "frames", "", "directory for per-year PNG density frames")
	flag.StringVar(&moviePath, "movie", "", "assemble frames into this video file (requires -frames and ffmpeg)")
	flag.StringVar(&logPath, "log", "", "CSV file for per-year population counts")
	flag.BoolVar(&tui, "tui", false, "watch the run in an interactive terminal view")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("rossumoya %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(mapPath, popPath, years, seed, framesDir, moviePath, logPath, tui); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(mapPath, popPath string, years int, seed int64, framesDir, moviePath, logPath string, tui bool) error {
	if years <= 0 {
		return fmt.Errorf("years must be positive, got %d", years)
	}
	if moviePath != "" && framesDir == "" {
		return fmt.Errorf("-movie requires -frames")
	}

	geography := demoGeography
	if mapPath != "" {
		data, err := os.ReadFile(mapPath)
		if err != nil {
			return fmt.Errorf("read map: %w", err)
		}
		geography = string(data)
	}

	population := demoPopulation()
	if popPath != "" {
		data, err := os.ReadFile(popPath)
		if err != nil {
			return fmt.Errorf("read population: %w", err)
		}
		population = nil
		if err := json.Unmarshal(data, &population); err != nil {
			return fmt.Errorf("parse population: %w", err)
		}
	}

	s, err := sim.NewSimulation(sim.Config{
		Geography:         geography,
		InitialPopulation: population,
		Seed:              seed,
	})
	if err != nil {
		return err
	}

	var logger *report.CountLogger
	if logPath != "" {
		logger, err = report.NewCountLogger(logPath)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Close() }()
	}

	var frames *report.FrameWriter
	if framesDir != "" {
		frames, err = report.NewFrameWriter(report.FrameConfig{Dir: framesDir}, s.Island().TerrainGrid())
		if err != nil {
			return err
		}
	}

	var observeErr error
	observe := func(snap sim.Snapshot) {
		if logger != nil && observeErr == nil {
			observeErr = logger.Append(snap)
		}
		if frames != nil && observeErr == nil {
			_, observeErr = frames.WriteFrame(snap)
		}
	}

	if tui {
		app := ui.NewApp(s, ui.AppConfig{Years: years, Observe: observe})
		if err := app.Run(); err != nil {
			return err
		}
	} else {
		s.Simulate(years, func(snap sim.Snapshot) {
			observe(snap)
			fmt.Printf("%s  %s %6d  %s %6d\n",
				yearStyle.Render(fmt.Sprintf("year %4d", snap.Year)),
				herbStyle.Render("herbivores"), snap.Herbivores,
				carnStyle.Render("carnivores"), snap.Carnivores,
			)
		})
	}
	if observeErr != nil {
		return observeErr
	}

	if moviePath != "" {
		if err := frames.MakeMovie(moviePath); err != nil {
			return err
		}
		fmt.Printf("movie written to %s\n", moviePath)
	}
	return nil
}
