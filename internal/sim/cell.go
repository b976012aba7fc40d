package sim

import "sort"

// Cell is a single island tile: fixed terrain, the current fodder stock and
// the two resident populations.
type Cell struct {
	Terrain    Terrain
	Fodder     float64
	Herbivores []Animal
	Carnivores []Animal
}

// NumHerbivores returns the herbivore head count in the cell.
func (c *Cell) NumHerbivores() int { return len(c.Herbivores) }

// NumCarnivores returns the carnivore head count in the cell.
func (c *Cell) NumCarnivores() int { return len(c.Carnivores) }

func (c *Cell) population(species Species) *[]Animal {
	if species == Herbivore {
		return &c.Herbivores
	}
	return &c.Carnivores
}

// growFodder regrows the cell's plant biomass: Jungle resets to the terrain
// maximum, Savannah recovers toward the maximum by alpha*(fMax-f), all other
// terrains stay at zero. Fodder never exceeds fMax and never goes negative.
func (c *Cell) growFodder(tp TerrainParams) {
	switch c.Terrain {
	case Jungle:
		c.Fodder = tp.FMax
	case Savannah:
		c.Fodder += tp.Alpha * (tp.FMax - c.Fodder)
		if c.Fodder > tp.FMax {
			c.Fodder = tp.FMax
		}
		if c.Fodder < 0 {
			c.Fodder = 0
		}
	default:
		c.Fodder = 0
	}
}

func sortByFitness(animals []Animal, descending bool) {
	sort.SliceStable(animals, func(i, j int) bool {
		if descending {
			return animals[i].Fitness > animals[j].Fitness
		}
		return animals[i].Fitness < animals[j].Fitness
	})
}

// feedHerbivores lets herbivores graze in descending fitness order. Each eats
// the smaller of its appetite and the remaining fodder; the fodder stock
// depletes monotonically within the call.
func (c *Cell) feedHerbivores(p *Params) {
	sp := p.Species[Herbivore]
	sortByFitness(c.Herbivores, true)
	for i := range c.Herbivores {
		herb := &c.Herbivores[i]
		herb.regainAppetite(sp)
		if c.Fodder <= 0 {
			break
		}
		portion := herb.appetite
		if c.Fodder < portion {
			portion = c.Fodder
		}
		herb.eat(portion, sp)
		c.Fodder -= portion
	}
}

// feedCarnivores runs the predation phase. Carnivores hunt in descending
// fitness order; each attacks the resident herbivores in ascending fitness
// order until its appetite is filled or no prey remain. A kill removes the
// prey immediately and feeds the predator the smaller of its remaining
// appetite and the prey's weight. Returns the number of herbivores killed.
func (c *Cell) feedCarnivores(p *Params, rng Rand) int {
	sp := p.Species[Carnivore]
	killed := 0
	sortByFitness(c.Carnivores, true)
	sortByFitness(c.Herbivores, false)
	for i := range c.Carnivores {
		carn := &c.Carnivores[i]
		carn.regainAppetite(sp)
		if len(c.Herbivores) == 0 {
			continue
		}
		survivors := c.Herbivores[:0:0]
		for _, herb := range c.Herbivores {
			if carn.appetite <= 0 || !carn.attemptKill(herb, sp, rng) {
				survivors = append(survivors, herb)
				continue
			}
			portion := herb.Weight
			if carn.appetite < portion {
				portion = carn.appetite
			}
			carn.appetite -= portion
			carn.eat(portion, sp)
			killed++
		}
		c.Herbivores = survivors
	}
	return killed
}

// attemptKill decides one predation attempt. A predator no fitter than the
// prey never succeeds and consumes no random draw. For a positive fitness
// gap below DeltaPhiMax the kill probability is gap/DeltaPhiMax, above it
// the attempt always succeeds.
func (a *Animal) attemptKill(prey Animal, sp SpeciesParams, rng Rand) bool {
	if a.Fitness <= prey.Fitness {
		return false
	}
	gap := a.Fitness - prey.Fitness
	prob := 1.0
	if gap < sp.DeltaPhiMax {
		prob = gap / sp.DeltaPhiMax
	}
	return rng.Float64() < prob
}

// procreateAll runs the breeding season for both populations. Every animal
// attempts one birth against the population size recorded before any births
// in this call, and newborns join the population only after all attempts.
// Returns newborn counts per species.
func (c *Cell) procreateAll(p *Params, rng Rand) (herbBirths, carnBirths int) {
	herbBirths = c.procreateSpecies(Herbivore, p, rng)
	carnBirths = c.procreateSpecies(Carnivore, p, rng)
	return herbBirths, carnBirths
}

func (c *Cell) procreateSpecies(species Species, p *Params, rng Rand) int {
	sp := p.Species[species]
	pop := c.population(species)
	popSize := len(*pop)
	var newborns []Animal
	for i := 0; i < popSize; i++ {
		if newborn, ok := (*pop)[i].givesBirth(sp, popSize, rng); ok {
			newborns = append(newborns, newborn)
		}
	}
	*pop = append(*pop, newborns...)
	return len(newborns)
}

// ageAll applies the annual aging and weight-loss step to every resident.
func (c *Cell) ageAll(p *Params) {
	for i := range c.Herbivores {
		c.Herbivores[i].ageAndLoseWeight(p.Species[Herbivore])
	}
	for i := range c.Carnivores {
		c.Carnivores[i].ageAndLoseWeight(p.Species[Carnivore])
	}
}

// removeDead evaluates death for every resident against post-aging state and
// materializes the survivors into fresh slices. Returns death counts per
// species.
func (c *Cell) removeDead(p *Params, rng Rand) (herbDeaths, carnDeaths int) {
	herbDeaths = dropDead(&c.Herbivores, p.Species[Herbivore], rng)
	carnDeaths = dropDead(&c.Carnivores, p.Species[Carnivore], rng)
	return herbDeaths, carnDeaths
}

func dropDead(pop *[]Animal, sp SpeciesParams, rng Rand) int {
	survivors := (*pop)[:0:0]
	for _, animal := range *pop {
		if animal.dies(sp, rng) {
			continue
		}
		survivors = append(survivors, animal)
	}
	deaths := len(*pop) - len(survivors)
	*pop = survivors
	return deaths
}
