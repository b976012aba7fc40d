package sim

import "fmt"

// Species tags the two animal kinds. Behavior differences between them are
// data in SpeciesParams, selected by this tag.
type Species uint8

const (
	Herbivore Species = iota
	Carnivore

	numSpecies = 2
)

func (s Species) String() string {
	switch s {
	case Herbivore:
		return "Herbivore"
	case Carnivore:
		return "Carnivore"
	default:
		return fmt.Sprintf("Species(%d)", uint8(s))
	}
}

// SpeciesParams is the per-species rule table. Field names follow the common
// ecological-model notation; see the setter keys in params.go for the
// override spelling.
type SpeciesParams struct {
	WBirth      float64 // mean birth weight
	SigmaBirth  float64 // birth weight standard deviation
	Beta        float64 // feeding weight-gain factor
	Eta         float64 // annual weight-loss fraction
	AHalf       float64 // fitness age midpoint
	PhiAge      float64 // fitness age steepness
	WHalf       float64 // fitness weight midpoint
	PhiWeight   float64 // fitness weight steepness
	Mu          float64 // migration propensity factor
	Gamma       float64 // procreation probability factor
	Zeta        float64 // birth weight threshold factor
	Xi          float64 // maternal weight cost factor
	Omega       float64 // background mortality factor
	F           float64 // annual appetite
	DeltaPhiMax float64 // kill probability fitness gap ceiling (carnivore only)
}

func defaultSpeciesParams() [numSpecies]SpeciesParams {
	return [numSpecies]SpeciesParams{
		Herbivore: {
			WBirth:     8.0,
			SigmaBirth: 1.5,
			Beta:       0.9,
			Eta:        0.05,
			AHalf:      40.0,
			PhiAge:     0.6,
			WHalf:      10.0,
			PhiWeight:  0.1,
			Mu:         0.25,
			Gamma:      0.2,
			Zeta:       3.5,
			Xi:         1.2,
			Omega:      0.4,
			F:          10.0,
		},
		Carnivore: {
			WBirth:      6.0,
			SigmaBirth:  1.0,
			Beta:        0.75,
			Eta:         0.125,
			AHalf:       40.0,
			PhiAge:      0.3,
			WHalf:       4.0,
			PhiWeight:   0.4,
			Mu:          0.4,
			Gamma:       0.8,
			Zeta:        3.5,
			Xi:          1.1,
			Omega:       0.8,
			F:           50.0,
			DeltaPhiMax: 10.0,
		},
	}
}

// ParseSpecies resolves a species name from configuration input.
func ParseSpecies(name string) (Species, error) {
	switch name {
	case "Herbivore":
		return Herbivore, nil
	case "Carnivore":
		return Carnivore, nil
	}
	if hint := nearestToken(name, []string{"Herbivore", "Carnivore"}); hint != "" {
		return 0, fmt.Errorf("unknown species %q (did you mean %q?)", name, hint)
	}
	return 0, fmt.Errorf("unknown species %q (must be Herbivore or Carnivore)", name)
}
