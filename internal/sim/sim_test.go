package sim

import (
	"reflect"
	"strings"
	"testing"
)

func herbsAt(loc Loc, n int, age int, weight float64) PopulationEntry {
	animals := make([]AnimalDef, n)
	for i := range animals {
		animals[i] = AnimalDef{Species: "Herbivore", Age: age, Weight: weight}
	}
	return PopulationEntry{Loc: loc, Animals: animals}
}

func carnsAt(loc Loc, n int, age int, weight float64) PopulationEntry {
	animals := make([]AnimalDef, n)
	for i := range animals {
		animals[i] = AnimalDef{Species: "Carnivore", Age: age, Weight: weight}
	}
	return PopulationEntry{Loc: loc, Animals: animals}
}

const testIsland = `OOOOO
OJSDO
OSJSO
OOOOO`

func newTestSimulation(t *testing.T, seed int64) *Simulation {
	t.Helper()
	s, err := NewSimulation(Config{
		Geography: testIsland,
		InitialPopulation: []PopulationEntry{
			herbsAt(Loc{Row: 2, Col: 2}, 40, 5, 20),
			carnsAt(Loc{Row: 3, Col: 3}, 6, 5, 20),
		},
		Seed: seed,
	})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

func TestNewSimulationValidatesConfig(t *testing.T) {
	if _, err := NewSimulation(Config{}); err == nil {
		t.Fatalf("expected error for empty geography")
	}
	if _, err := NewSimulation(Config{Geography: tinyIsland}); err == nil {
		t.Fatalf("expected error for empty initial population")
	}
	_, err := NewSimulation(Config{
		Geography:         "OOO\nOJJ\nOOO",
		InitialPopulation: []PopulationEntry{herbsAt(Loc{Row: 2, Col: 2}, 1, 5, 20)},
	})
	if err == nil || !strings.Contains(err.Error(), "border") {
		t.Fatalf("expected border error, got: %v", err)
	}
}

func TestSimulationPicksSeedWhenZero(t *testing.T) {
	s := newTestSimulation(t, 0)
	if s.Seed() == 0 {
		t.Fatalf("expected a time-based seed to be chosen")
	}
}

func TestDeterministicTrajectories(t *testing.T) {
	a := newTestSimulation(t, 424242)
	b := newTestSimulation(t, 424242)

	snapsA := a.Simulate(25, nil)
	snapsB := b.Simulate(25, nil)

	if !reflect.DeepEqual(snapsA, snapsB) {
		t.Fatalf("same seed and configuration must reproduce identical trajectories")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := newTestSimulation(t, 1)
	b := newTestSimulation(t, 2)
	snapsA := a.Simulate(15, nil)
	snapsB := b.Simulate(15, nil)
	if reflect.DeepEqual(snapsA, snapsB) {
		t.Fatalf("different seeds produced identical 15-year trajectories")
	}
}

func TestPopulationCountConservation(t *testing.T) {
	s := newTestSimulation(t, 99)
	prevHerbs := s.NumHerbivores()
	prevCarns := s.NumCarnivores()

	for year := 0; year < 30; year++ {
		snap := s.AdvanceYear()
		if got := prevHerbs + snap.HerbivoreBirths - snap.HerbivoreDeaths; got != snap.Herbivores {
			t.Fatalf("year %d: herbivores = %d, want %d + %d - %d", snap.Year, snap.Herbivores, prevHerbs, snap.HerbivoreBirths, snap.HerbivoreDeaths)
		}
		if got := prevCarns + snap.CarnivoreBirths - snap.CarnivoreDeaths; got != snap.Carnivores {
			t.Fatalf("year %d: carnivores = %d, want %d + %d - %d", snap.Year, snap.Carnivores, prevCarns, snap.CarnivoreBirths, snap.CarnivoreDeaths)
		}
		prevHerbs, prevCarns = snap.Herbivores, snap.Carnivores
	}
}

func TestYearCountMonotonic(t *testing.T) {
	s := newTestSimulation(t, 5)
	for want := 1; want <= 10; want++ {
		snap := s.AdvanceYear()
		if snap.Year != want || s.Year() != want {
			t.Fatalf("year = %d/%d, want %d", snap.Year, s.Year(), want)
		}
	}
}

// All-Jungle island, every stochastic rule disabled: each of the 50 identical
// herbivores eats its full appetite, so every weight follows the same
// deterministic trajectory and nobody dies.
func TestAllJungleEveryoneEatsFullAppetite(t *testing.T) {
	s, err := NewSimulation(Config{
		Geography: `OOOO
OJJO
OJJO
OOOO`,
		InitialPopulation: []PopulationEntry{herbsAt(Loc{Row: 2, Col: 2}, 50, 5, 20)},
		Seed:              1,
	})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	if err := s.SetSpeciesParams(Herbivore, map[string]float64{"omega": 0, "gamma": 0, "mu": 0}); err != nil {
		t.Fatalf("set params: %v", err)
	}

	snap := s.AdvanceYear()
	if snap.Herbivores != 50 || snap.HerbivoreDeaths != 0 || snap.HerbivoreBirths != 0 {
		t.Fatalf("expected all 50 herbivores to survive quietly, got %+v", snap)
	}

	sp := defaultSpeciesParams()[Herbivore]
	wantWeight := (20 + sp.Beta*sp.F) * (1 - sp.Eta)
	for i := range s.island.Cells {
		for _, h := range s.island.Cells[i].Herbivores {
			if !almostEqual(h.Weight, wantWeight) {
				t.Fatalf("herbivore weight = %v, want %v (full appetite then annual loss)", h.Weight, wantWeight)
			}
		}
	}
	stats := snap.HerbivoreStats
	if !almostEqual(stats.Weight.Mean, wantWeight) || !almostEqual(stats.Weight.StdDev, 0) {
		t.Fatalf("weight stats = mean %v stddev %v, want mean %v stddev 0", stats.Weight.Mean, stats.Weight.StdDev, wantWeight)
	}
}

func TestSnapshotGridsMatchTotals(t *testing.T) {
	s := newTestSimulation(t, 11)
	snap := s.AdvanceYear()

	sumGrid := func(grid [][]int) int {
		total := 0
		for _, row := range grid {
			for _, n := range row {
				total += n
			}
		}
		return total
	}
	if sumGrid(snap.HerbivoreGrid) != snap.Herbivores {
		t.Fatalf("herbivore grid sums to %d, total says %d", sumGrid(snap.HerbivoreGrid), snap.Herbivores)
	}
	if sumGrid(snap.CarnivoreGrid) != snap.Carnivores {
		t.Fatalf("carnivore grid sums to %d, total says %d", sumGrid(snap.CarnivoreGrid), snap.Carnivores)
	}
}

func TestAddPopulationBetweenYears(t *testing.T) {
	s := newTestSimulation(t, 3)
	s.Simulate(5, nil)

	before := s.NumCarnivores()
	if err := s.AddPopulation([]PopulationEntry{carnsAt(Loc{Row: 2, Col: 2}, 4, 2, 25)}); err != nil {
		t.Fatalf("add population: %v", err)
	}
	if s.NumCarnivores() != before+4 {
		t.Fatalf("carnivores = %d, want %d", s.NumCarnivores(), before+4)
	}

	if err := s.AddPopulation([]PopulationEntry{carnsAt(Loc{Row: 1, Col: 1}, 1, 2, 25)}); err == nil {
		t.Fatalf("expected error when adding population on Ocean")
	}
}

func TestSetSpeciesParamsValidation(t *testing.T) {
	s := newTestSimulation(t, 3)

	err := s.SetSpeciesParams(Herbivore, map[string]float64{"ommega": 0.1})
	if err == nil || !strings.Contains(err.Error(), `did you mean "omega"`) {
		t.Fatalf("expected suggestion for misspelled key, got: %v", err)
	}
	if err := s.SetSpeciesParams(Herbivore, map[string]float64{"eta": 1.5}); err == nil {
		t.Fatalf("expected error for eta > 1")
	}
	if err := s.SetSpeciesParams(Herbivore, map[string]float64{"DeltaPhiMax": 5}); err == nil {
		t.Fatalf("expected error for DeltaPhiMax on herbivores")
	}
	if err := s.SetSpeciesParams(Carnivore, map[string]float64{"DeltaPhiMax": 0}); err == nil {
		t.Fatalf("expected error for non-positive DeltaPhiMax")
	}
	if err := s.SetSpeciesParams(Carnivore, map[string]float64{"beta": -1}); err == nil {
		t.Fatalf("expected error for negative parameter")
	}
}

func TestSetTerrainParamsValidation(t *testing.T) {
	s := newTestSimulation(t, 3)
	if err := s.SetTerrainParams(Savannah, map[string]float64{"f_max": 500, "alpha": 0.5}); err != nil {
		t.Fatalf("valid override rejected: %v", err)
	}
	if err := s.SetTerrainParams(Savannah, map[string]float64{"f_mx": 500}); err == nil || !strings.Contains(err.Error(), `did you mean "f_max"`) {
		t.Fatalf("expected suggestion for misspelled key, got: %v", err)
	}
	if err := s.SetTerrainParams(Jungle, map[string]float64{"f_max": -2}); err == nil {
		t.Fatalf("expected error for negative f_max")
	}
}

func TestOceanAndMountainNeverInhabited(t *testing.T) {
	s, err := NewSimulation(Config{
		Geography: `OOOOO
OJMJO
OSDSO
OOOOO`,
		InitialPopulation: []PopulationEntry{
			herbsAt(Loc{Row: 2, Col: 2}, 30, 5, 20),
			carnsAt(Loc{Row: 3, Col: 3}, 5, 5, 20),
		},
		Seed: 77,
	})
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	s.Simulate(40, func(snap Snapshot) {
		grid := s.Island().TerrainGrid()
		for r := range grid {
			for c, terrain := range grid[r] {
				if terrain != Ocean && terrain != Mountain {
					continue
				}
				if snap.HerbivoreGrid[r][c] != 0 || snap.CarnivoreGrid[r][c] != 0 {
					t.Fatalf("year %d: animals on %s at (%d, %d)", snap.Year, terrain, r+1, c+1)
				}
			}
		}
	})
}
