package sim

import "math"

// Animal is the per-individual state. Fitness is derived from species, age
// and weight and is recomputed after every age or weight change; it is never
// mutated directly.
type Animal struct {
	Species Species
	Age     int
	Weight  float64
	Fitness float64

	appetite float64 // remaining appetite within the current feeding phase
	moved    bool    // whether the animal has migrated this year
}

func newAnimal(species Species, age int, weight float64, sp SpeciesParams) Animal {
	a := Animal{Species: species, Age: age, Weight: weight}
	a.recomputeFitness(sp)
	return a
}

// recomputeFitness evaluates
//
//	phi = q+(age, aHalf, phiAge) * q-(weight, wHalf, phiWeight)
//
// with q±(x, xHalf, phi) = 1 / (1 + exp(±phi*(x - xHalf))). Weight at or
// below zero forces fitness to zero. The product of two sigmoids is always
// in [0, 1].
func (a *Animal) recomputeFitness(sp SpeciesParams) {
	if a.Weight <= 0 {
		a.Fitness = 0
		return
	}
	qAge := 1 / (1 + math.Exp(sp.PhiAge*(float64(a.Age)-sp.AHalf)))
	qWeight := 1 / (1 + math.Exp(-sp.PhiWeight*(a.Weight-sp.WHalf)))
	a.Fitness = qAge * qWeight
}

func (a *Animal) regainAppetite(sp SpeciesParams) {
	a.appetite = sp.F
}

// eat adds weight for a consumed portion and refreshes fitness.
func (a *Animal) eat(portion float64, sp SpeciesParams) {
	a.Weight += sp.Beta * portion
	a.recomputeFitness(sp)
}

// ageAndLoseWeight applies the annual aging step: age increments, weight
// drops by the species loss fraction, fitness refreshes once afterwards.
// Called exactly once per animal per year, after feeding and before death
// evaluation.
func (a *Animal) ageAndLoseWeight(sp SpeciesParams) {
	a.Age++
	a.Weight -= sp.Eta * a.Weight
	a.recomputeFitness(sp)
}

// givesBirth decides whether the animal produces offspring given the size of
// its own-species population in the cell. Animals below the weight threshold
// zeta*(wBirth+sigmaBirth) never attempt birth and consume no random draws.
// Otherwise the attempt succeeds with probability min(1, gamma*phi*(N-1));
// on success the newborn weight is a Gaussian draw and the birth is aborted
// if the maternal cost xi*newbornWeight would exceed the mother's weight.
// "No birth" is a normal outcome, not an error.
func (a *Animal) givesBirth(sp SpeciesParams, popSize int, rng Rand) (Animal, bool) {
	if a.Weight < sp.Zeta*(sp.WBirth+sp.SigmaBirth) {
		return Animal{}, false
	}
	prob := sp.Gamma * a.Fitness * float64(popSize-1)
	if prob > 1 {
		prob = 1
	}
	if rng.Float64() >= prob {
		return Animal{}, false
	}
	birthWeight := sp.WBirth + sp.SigmaBirth*rng.NormFloat64()
	if birthWeight < 0 {
		birthWeight = 0
	}
	cost := sp.Xi * birthWeight
	if a.Weight < cost {
		return Animal{}, false
	}
	a.Weight -= cost
	a.recomputeFitness(sp)
	return newAnimal(a.Species, 0, birthWeight, sp), true
}

// dies reports whether the animal dies this year. Weight at or below zero is
// certain death; otherwise death occurs with probability omega*(1-phi).
func (a *Animal) dies(sp SpeciesParams, rng Rand) bool {
	if a.Weight <= 0 {
		return true
	}
	return rng.Float64() < sp.Omega*(1-a.Fitness)
}

// wantsToMigrate reports whether the animal attempts to move this year, with
// probability mu*phi.
func (a *Animal) wantsToMigrate(sp SpeciesParams, rng Rand) bool {
	return rng.Float64() < sp.Mu*a.Fitness
}
