package sim

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// Params bundles the tunable rule tables for one simulation run. Each run
// owns its own copy, so overrides never leak between simulations.
type Params struct {
	Species [numSpecies]SpeciesParams
	Terrain [numTerrains]TerrainParams
}

func defaultParams() Params {
	return Params{
		Species: defaultSpeciesParams(),
		Terrain: defaultTerrainParams(),
	}
}

var speciesParamKeys = []string{
	"w_birth", "sigma_birth", "beta", "eta", "a_half", "phi_age",
	"w_half", "phi_weight", "mu", "gamma", "zeta", "xi", "omega",
	"F", "DeltaPhiMax",
}

var terrainParamKeys = []string{"f_max", "alpha"}

// SetSpecies applies parameter overrides for one species. Keys use the
// course notation (w_birth, sigma_birth, beta, eta, a_half, phi_age, w_half,
// phi_weight, mu, gamma, zeta, xi, omega, F, DeltaPhiMax). Values must be
// non-negative, eta must not exceed 1, and DeltaPhiMax must be strictly
// positive and is accepted for carnivores only.
func (p *Params) SetSpecies(species Species, overrides map[string]float64) error {
	if int(species) >= numSpecies {
		return fmt.Errorf("unknown species tag %d", species)
	}
	sp := p.Species[species]
	keys := sortedKeys(overrides)
	for _, key := range keys {
		value := overrides[key]
		if key != "eta" && key != "DeltaPhiMax" && value < 0 {
			return fmt.Errorf("species parameter %q must be non-negative, got %v", key, value)
		}
		switch key {
		case "w_birth":
			sp.WBirth = value
		case "sigma_birth":
			sp.SigmaBirth = value
		case "beta":
			sp.Beta = value
		case "eta":
			if value < 0 || value > 1 {
				return fmt.Errorf("species parameter eta must be in [0, 1], got %v", value)
			}
			sp.Eta = value
		case "a_half":
			sp.AHalf = value
		case "phi_age":
			sp.PhiAge = value
		case "w_half":
			sp.WHalf = value
		case "phi_weight":
			sp.PhiWeight = value
		case "mu":
			sp.Mu = value
		case "gamma":
			sp.Gamma = value
		case "zeta":
			sp.Zeta = value
		case "xi":
			sp.Xi = value
		case "omega":
			sp.Omega = value
		case "F":
			sp.F = value
		case "DeltaPhiMax":
			if species != Carnivore {
				return fmt.Errorf("DeltaPhiMax applies to carnivores only")
			}
			if value <= 0 {
				return fmt.Errorf("DeltaPhiMax must be strictly positive, got %v", value)
			}
			sp.DeltaPhiMax = value
		default:
			return unknownParamError("species", key, speciesParamKeys)
		}
	}
	p.Species[species] = sp
	return nil
}

// SetTerrain applies parameter overrides for one terrain type. Keys are
// f_max and alpha, both non-negative.
func (p *Params) SetTerrain(terrain Terrain, overrides map[string]float64) error {
	if int(terrain) >= numTerrains {
		return fmt.Errorf("unknown terrain tag %d", terrain)
	}
	tp := p.Terrain[terrain]
	keys := sortedKeys(overrides)
	for _, key := range keys {
		value := overrides[key]
		if value < 0 {
			return fmt.Errorf("terrain parameter %q must be non-negative, got %v", key, value)
		}
		switch key {
		case "f_max":
			tp.FMax = value
		case "alpha":
			tp.Alpha = value
		default:
			return unknownParamError("terrain", key, terrainParamKeys)
		}
	}
	p.Terrain[terrain] = tp
	return nil
}

func unknownParamError(kind, key string, known []string) error {
	if hint := nearestToken(key, known); hint != "" {
		return fmt.Errorf("unknown %s parameter %q (did you mean %q?)", kind, key, hint)
	}
	return fmt.Errorf("unknown %s parameter %q", kind, key)
}

// nearestToken returns the closest known token within the edit-distance
// budget, or "" when nothing is plausibly close.
func nearestToken(token string, known []string) string {
	best := ""
	bestDist := 0
	for _, cand := range known {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if best == "" || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
