package sim

import "fmt"

// Terrain categorizes a cell. It controls fodder growth and whether animals
// may stand on the cell.
type Terrain uint8

const (
	Ocean Terrain = iota
	Mountain
	Desert
	Savannah
	Jungle

	numTerrains = 5
)

func (t Terrain) String() string {
	switch t {
	case Ocean:
		return "Ocean"
	case Mountain:
		return "Mountain"
	case Desert:
		return "Desert"
	case Savannah:
		return "Savannah"
	case Jungle:
		return "Jungle"
	default:
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
}

// Token returns the single-letter map code for the terrain.
func (t Terrain) Token() byte {
	switch t {
	case Ocean:
		return 'O'
	case Mountain:
		return 'M'
	case Desert:
		return 'D'
	case Savannah:
		return 'S'
	case Jungle:
		return 'J'
	default:
		return '?'
	}
}

// terrainFromToken resolves a map letter. The bool reports whether the token
// is a known terrain code.
func terrainFromToken(c byte) (Terrain, bool) {
	switch c {
	case 'O':
		return Ocean, true
	case 'M':
		return Mountain, true
	case 'D':
		return Desert, true
	case 'S':
		return Savannah, true
	case 'J':
		return Jungle, true
	default:
		return 0, false
	}
}

// ParseTerrain resolves a terrain name from configuration input.
func ParseTerrain(name string) (Terrain, error) {
	names := []string{"Ocean", "Mountain", "Desert", "Savannah", "Jungle"}
	for i, n := range names {
		if name == n {
			return Terrain(i), nil
		}
	}
	if hint := nearestToken(name, names); hint != "" {
		return 0, fmt.Errorf("unknown terrain %q (did you mean %q?)", name, hint)
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

// TerrainParams holds the per-terrain tuning table.
type TerrainParams struct {
	FMax     float64 // maximum fodder the cell can hold
	Alpha    float64 // savannah regrowth rate toward FMax
	Passable bool    // whether animals can stand on the cell
}

func defaultTerrainParams() [numTerrains]TerrainParams {
	return [numTerrains]TerrainParams{
		Ocean:    {FMax: 0, Passable: false},
		Mountain: {FMax: 0, Passable: false},
		Desert:   {FMax: 0, Passable: true},
		Savannah: {FMax: 300, Alpha: 0.3, Passable: true},
		Jungle:   {FMax: 800, Passable: true},
	}
}
