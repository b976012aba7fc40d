package sim

import "gonum.org/v1/gonum/stat"

// Distribution summarizes one animal property across a population, carrying
// the raw samples for histogram rendering alongside the usual moments.
type Distribution struct {
	Samples []float64 `json:"samples,omitempty"`
	Mean    float64   `json:"mean"`
	StdDev  float64   `json:"std_dev"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
}

// SpeciesStats aggregates the fitness, age and weight distributions of one
// species for a yearly snapshot.
type SpeciesStats struct {
	Fitness Distribution `json:"fitness"`
	Age     Distribution `json:"age"`
	Weight  Distribution `json:"weight"`
}

func summarize(samples []float64) Distribution {
	d := Distribution{Samples: samples}
	if len(samples) == 0 {
		return d
	}
	d.Mean = stat.Mean(samples, nil)
	if len(samples) > 1 {
		d.StdDev = stat.StdDev(samples, nil)
	}
	d.Min, d.Max = samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	return d
}

func (s *Simulation) speciesStats(species Species) SpeciesStats {
	var fitness, age, weight []float64
	for i := range s.island.Cells {
		pop := *s.island.Cells[i].population(species)
		for j := range pop {
			fitness = append(fitness, pop[j].Fitness)
			age = append(age, float64(pop[j].Age))
			weight = append(weight, pop[j].Weight)
		}
	}
	return SpeciesStats{
		Fitness: summarize(fitness),
		Age:     summarize(age),
		Weight:  summarize(weight),
	}
}
