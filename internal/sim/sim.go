package sim

import (
	"fmt"
	"time"
)

// Config describes one simulation run. Validation happens once, in
// NewSimulation; after construction years never fail.
type Config struct {
	// Geography is the multi-line terrain token map (O, M, D, S, J).
	Geography string `json:"geography"`
	// InitialPopulation lists the animals present at year zero.
	InitialPopulation []PopulationEntry `json:"initial_population"`
	// Seed fixes the random stream. Zero picks a time-based seed.
	Seed int64 `json:"seed"`
}

// PopulationEntry places a batch of animals on one cell.
type PopulationEntry struct {
	Loc     Loc         `json:"loc"`
	Animals []AnimalDef `json:"pop"`
}

// AnimalDef describes one animal in configuration input.
type AnimalDef struct {
	Species string  `json:"species"`
	Age     int     `json:"age"`
	Weight  float64 `json:"weight"`
}

func (c Config) Validate() error {
	if c.Geography == "" {
		return fmt.Errorf("geography is empty")
	}
	if len(c.InitialPopulation) == 0 {
		return fmt.Errorf("initial population is empty")
	}
	return nil
}

// Snapshot is the aggregate view of the island after one completed year.
// It is the stable contract consumed by reporting and visualization.
type Snapshot struct {
	Year int `json:"year"`

	Herbivores int `json:"herbivores"`
	Carnivores int `json:"carnivores"`

	HerbivoreBirths int `json:"herbivore_births"`
	CarnivoreBirths int `json:"carnivore_births"`
	HerbivoreDeaths int `json:"herbivore_deaths"`
	CarnivoreDeaths int `json:"carnivore_deaths"`

	// Per-cell head counts, indexed [row][col] with the map layout.
	HerbivoreGrid [][]int `json:"herbivore_grid"`
	CarnivoreGrid [][]int `json:"carnivore_grid"`

	HerbivoreStats SpeciesStats `json:"herbivore_stats"`
	CarnivoreStats SpeciesStats `json:"carnivore_stats"`
}

// TotalAnimals returns the island-wide head count.
func (s Snapshot) TotalAnimals() int { return s.Herbivores + s.Carnivores }

// Simulation drives the annual cycle over one island. It owns the random
// stream and the parameter tables; all animal data lives in the island's
// cells.
type Simulation struct {
	island *Island
	params Params
	rng    Rand
	seed   int64
	year   int
}

// NewSimulation validates the configuration, builds the island and places
// the initial population. Configuration errors are fatal and carry the
// offending coordinate or token; no partially constructed simulation is
// returned.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	island, err := ParseGeography(cfg.Geography)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		island: island,
		params: defaultParams(),
		rng:    seededRNG(seed),
		seed:   seed,
	}
	if err := island.placePopulation(cfg.InitialPopulation, &s.params); err != nil {
		return nil, err
	}
	return s, nil
}

// Year returns the number of completed simulation years.
func (s *Simulation) Year() int { return s.year }

// Seed returns the effective random seed of the run.
func (s *Simulation) Seed() int64 { return s.seed }

// Island exposes the simulated island for read-only inspection.
func (s *Simulation) Island() *Island { return s.island }

// NumHerbivores returns the island-wide herbivore count.
func (s *Simulation) NumHerbivores() int {
	total := 0
	for i := range s.island.Cells {
		total += len(s.island.Cells[i].Herbivores)
	}
	return total
}

// NumCarnivores returns the island-wide carnivore count.
func (s *Simulation) NumCarnivores() int {
	total := 0
	for i := range s.island.Cells {
		total += len(s.island.Cells[i].Carnivores)
	}
	return total
}

// NumAnimals returns the island-wide head count across species.
func (s *Simulation) NumAnimals() int { return s.NumHerbivores() + s.NumCarnivores() }

// SetSpeciesParams overrides rule-table values for one species, validated
// the same way as at construction. Intended between construction and the
// first year, or between years.
func (s *Simulation) SetSpeciesParams(species Species, overrides map[string]float64) error {
	return s.params.SetSpecies(species, overrides)
}

// SetTerrainParams overrides rule-table values for one terrain type.
func (s *Simulation) SetTerrainParams(terrain Terrain, overrides map[string]float64) error {
	return s.params.SetTerrain(terrain, overrides)
}

// AddPopulation injects additional animals between years, with the same
// validation as the initial placement.
func (s *Simulation) AddPopulation(entries []PopulationEntry) error {
	return s.island.placePopulation(entries, &s.params)
}

// AdvanceYear runs the five life-cycle phases in their mandated order:
// feed, procreate, migrate, age, death. No phase is skipped or reordered;
// death always evaluates post-aging state.
//
// Random draw order is fixed for reproducibility: within each phase cells
// are visited row-major and herbivores are processed before carnivores,
// individuals in the phase's fitness sort order. Returns the year's
// aggregate snapshot.
func (s *Simulation) AdvanceYear() Snapshot {
	isl := s.island
	isl.resetMigrationFlags()

	var herbBirths, carnBirths, herbDeaths, carnDeaths int

	// FeedPhase: fodder regrowth, grazing, then predation, cell by cell.
	for i := range isl.Cells {
		cell := &isl.Cells[i]
		cell.growFodder(s.params.Terrain[cell.Terrain])
		cell.feedHerbivores(&s.params)
		herbDeaths += cell.feedCarnivores(&s.params, s.rng)
	}

	// ProcreatePhase.
	for i := range isl.Cells {
		hb, cb := isl.Cells[i].procreateAll(&s.params, s.rng)
		herbBirths += hb
		carnBirths += cb
	}

	// MigratePhase: island-wide, decisions from a start-of-phase snapshot.
	isl.migrate(&s.params, s.rng)

	// AgePhase.
	for i := range isl.Cells {
		isl.Cells[i].ageAll(&s.params)
	}

	// DeathPhase.
	for i := range isl.Cells {
		hd, cd := isl.Cells[i].removeDead(&s.params, s.rng)
		herbDeaths += hd
		carnDeaths += cd
	}

	s.year++
	return Snapshot{
		Year:            s.year,
		Herbivores:      s.NumHerbivores(),
		Carnivores:      s.NumCarnivores(),
		HerbivoreBirths: herbBirths,
		CarnivoreBirths: carnBirths,
		HerbivoreDeaths: herbDeaths,
		CarnivoreDeaths: carnDeaths,
		HerbivoreGrid:   isl.countGrid(Herbivore),
		CarnivoreGrid:   isl.countGrid(Carnivore),
		HerbivoreStats:  s.speciesStats(Herbivore),
		CarnivoreStats:  s.speciesStats(Carnivore),
	}
}

// Simulate runs the annual cycle the given number of years, handing each
// year's snapshot to observe (which may be nil). It returns the full
// trajectory.
func (s *Simulation) Simulate(years int, observe func(Snapshot)) []Snapshot {
	snapshots := make([]Snapshot, 0, years)
	for i := 0; i < years; i++ {
		snap := s.AdvanceYear()
		snapshots = append(snapshots, snap)
		if observe != nil {
			observe(snap)
		}
	}
	return snapshots
}
