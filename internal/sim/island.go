package sim

import (
	"fmt"
	"strings"
)

// Loc addresses a cell on the island map. Coordinates are 1-based with row 1
// at the top, matching the geography string layout.
type Loc struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (l Loc) String() string { return fmt.Sprintf("(%d, %d)", l.Row, l.Col) }

// Island is the fixed 2-D grid of cells plus the adjacency rules animals use
// when migrating. Cells are stored row-major.
type Island struct {
	Rows, Cols int
	Cells      []Cell
}

// ParseGeography builds an island from a multi-line token string. The map
// must be rectangular, use only known terrain codes (O, M, D, S, J) and have
// an all-Ocean border, so the habitat is closed. Violations are reported
// with the offending coordinate.
func ParseGeography(geography string) (*Island, error) {
	trimmed := strings.TrimSpace(geography)
	if trimmed == "" {
		return nil, fmt.Errorf("geography is empty")
	}
	rawLines := strings.Split(trimmed, "\n")
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.TrimSpace(line)
	}

	cols := len(lines[0])
	for i, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("geography must be rectangular: row %d has %d columns, expected %d", i+1, len(line), cols)
		}
	}

	rows := len(lines)
	island := &Island{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]Cell, rows*cols),
	}
	for r, line := range lines {
		for c := 0; c < cols; c++ {
			loc := Loc{Row: r + 1, Col: c + 1}
			terrain, ok := terrainFromToken(line[c])
			if !ok {
				return nil, fmt.Errorf("invalid terrain token %q at %s (must be one of O, M, D, S, J)", string(line[c]), loc)
			}
			if (r == 0 || r == rows-1 || c == 0 || c == cols-1) && terrain != Ocean {
				return nil, fmt.Errorf("border cells must be Ocean, found %s at %s", terrain, loc)
			}
			island.Cells[r*cols+c] = Cell{Terrain: terrain}
		}
	}
	return island, nil
}

func (isl *Island) index(loc Loc) (int, bool) {
	if loc.Row < 1 || loc.Row > isl.Rows || loc.Col < 1 || loc.Col > isl.Cols {
		return 0, false
	}
	return (loc.Row-1)*isl.Cols + loc.Col - 1, true
}

// CellAt returns the cell at loc, or nil when loc is outside the map.
func (isl *Island) CellAt(loc Loc) *Cell {
	idx, ok := isl.index(loc)
	if !ok {
		return nil
	}
	return &isl.Cells[idx]
}

// passableNeighbors returns the indexes of the up-to-4 orthogonal neighbors
// an animal may stand on. Border cells are Ocean, so interior cells always
// have all four neighbors on the map.
func (isl *Island) passableNeighbors(idx int, p *Params) []int {
	row, col := idx/isl.Cols, idx%isl.Cols
	candidates := [4][2]int{
		{row - 1, col},
		{row + 1, col},
		{row, col - 1},
		{row, col + 1},
	}
	neighbors := make([]int, 0, 4)
	for _, rc := range candidates {
		if rc[0] < 0 || rc[0] >= isl.Rows || rc[1] < 0 || rc[1] >= isl.Cols {
			continue
		}
		n := rc[0]*isl.Cols + rc[1]
		if !p.Terrain[isl.Cells[n].Terrain].Passable {
			continue
		}
		neighbors = append(neighbors, n)
	}
	return neighbors
}

// placePopulation adds animals to the island, validating the target cell and
// every animal attribute. Used both at construction and for mid-run
// injections.
func (isl *Island) placePopulation(entries []PopulationEntry, p *Params) error {
	for _, entry := range entries {
		idx, ok := isl.index(entry.Loc)
		if !ok {
			return fmt.Errorf("population location %s is outside the map (rows 1..%d, cols 1..%d)", entry.Loc, isl.Rows, isl.Cols)
		}
		cell := &isl.Cells[idx]
		if !p.Terrain[cell.Terrain].Passable {
			return fmt.Errorf("population cannot be placed on %s at %s", cell.Terrain, entry.Loc)
		}
		for i, def := range entry.Animals {
			species, err := ParseSpecies(def.Species)
			if err != nil {
				return fmt.Errorf("animal %d at %s: %w", i, entry.Loc, err)
			}
			if def.Age < 0 {
				return fmt.Errorf("animal %d at %s: age must be non-negative, got %d", i, entry.Loc, def.Age)
			}
			if def.Weight < 0 {
				return fmt.Errorf("animal %d at %s: weight must be non-negative, got %v", i, entry.Loc, def.Weight)
			}
			pop := cell.population(species)
			*pop = append(*pop, newAnimal(species, def.Age, def.Weight, p.Species[species]))
		}
	}
	return nil
}

func (isl *Island) resetMigrationFlags() {
	for i := range isl.Cells {
		cell := &isl.Cells[i]
		for j := range cell.Herbivores {
			cell.Herbivores[j].moved = false
		}
		for j := range cell.Carnivores {
			cell.Carnivores[j].moved = false
		}
	}
}

// migrate runs the island-wide migration phase. All decisions are computed
// against a start-of-phase snapshot of per-cell fodder and herbivore counts,
// then applied, so movement is logically simultaneous and no animal reacts
// to another animal's move within the same year. Each animal moves at most
// once per year.
//
// Draw order: cells row-major, herbivores before carnivores, animals in
// their current slice order. Per animal: one draw for the migration
// decision, then one draw for the destination if it moves.
func (isl *Island) migrate(p *Params, rng Rand) {
	fodderSnap := make([]float64, len(isl.Cells))
	preySnap := make([]float64, len(isl.Cells))
	for i := range isl.Cells {
		fodderSnap[i] = isl.Cells[i].Fodder
		preySnap[i] = float64(len(isl.Cells[i].Herbivores))
	}

	incomingHerbs := make([][]Animal, len(isl.Cells))
	incomingCarns := make([][]Animal, len(isl.Cells))

	for i := range isl.Cells {
		cell := &isl.Cells[i]
		if !p.Terrain[cell.Terrain].Passable {
			continue
		}
		neighbors := isl.passableNeighbors(i, p)
		cell.Herbivores = isl.emigrate(cell.Herbivores, Herbivore, neighbors, fodderSnap, p, rng, incomingHerbs)
		cell.Carnivores = isl.emigrate(cell.Carnivores, Carnivore, neighbors, preySnap, p, rng, incomingCarns)
	}

	for i := range isl.Cells {
		cell := &isl.Cells[i]
		cell.Herbivores = append(cell.Herbivores, incomingHerbs[i]...)
		cell.Carnivores = append(cell.Carnivores, incomingCarns[i]...)
	}
}

// emigrate decides migration for one population and returns the animals that
// stay. Movers are appended to the destination's incoming list and flagged
// so they cannot move again this year.
func (isl *Island) emigrate(pop []Animal, species Species, neighbors []int, attractiveness []float64, p *Params, rng Rand, incoming [][]Animal) []Animal {
	if len(pop) == 0 {
		return pop
	}
	sp := p.Species[species]
	staying := pop[:0:0]
	for _, animal := range pop {
		if animal.moved || len(neighbors) == 0 || !animal.wantsToMigrate(sp, rng) {
			staying = append(staying, animal)
			continue
		}
		dest := pickDestination(neighbors, attractiveness, rng)
		animal.moved = true
		incoming[dest] = append(incoming[dest], animal)
	}
	return staying
}

// pickDestination chooses among candidate cells with probability weighted by
// each candidate's snapshot attractiveness (fodder for herbivores, prey
// count for carnivores). When every candidate weighs zero the choice is
// uniform.
func pickDestination(candidates []int, attractiveness []float64, rng Rand) int {
	total := 0.0
	for _, c := range candidates {
		total += attractiveness[c]
	}
	if total <= 0 {
		return candidates[rng.IntN(len(candidates))]
	}
	target := rng.Float64() * total
	running := 0.0
	for _, c := range candidates {
		running += attractiveness[c]
		if target < running {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// countGrid returns the per-cell head count of one species as a Rows x Cols
// matrix.
func (isl *Island) countGrid(species Species) [][]int {
	grid := make([][]int, isl.Rows)
	for r := 0; r < isl.Rows; r++ {
		grid[r] = make([]int, isl.Cols)
		for c := 0; c < isl.Cols; c++ {
			grid[r][c] = len(*isl.Cells[r*isl.Cols+c].population(species))
		}
	}
	return grid
}

// TerrainGrid returns the fixed terrain layout as a Rows x Cols matrix.
func (isl *Island) TerrainGrid() [][]Terrain {
	grid := make([][]Terrain, isl.Rows)
	for r := 0; r < isl.Rows; r++ {
		grid[r] = make([]Terrain, isl.Cols)
		for c := 0; c < isl.Cols; c++ {
			grid[r][c] = isl.Cells[r*isl.Cols+c].Terrain
		}
	}
	return grid
}
