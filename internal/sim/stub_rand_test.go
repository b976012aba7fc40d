package sim

// stubRand feeds predetermined values to the rules under test and counts how
// many draws each method served, so tests can pin down both outcomes and the
// draw-order contract.
type stubRand struct {
	floats []float64
	norms  []float64
	ints   []int

	floatCalls int
	normCalls  int
	intCalls   int
}

func (r *stubRand) Float64() float64 {
	r.floatCalls++
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *stubRand) NormFloat64() float64 {
	r.normCalls++
	if len(r.norms) == 0 {
		return 0
	}
	v := r.norms[0]
	r.norms = r.norms[1:]
	return v
}

func (r *stubRand) IntN(n int) int {
	r.intCalls++
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
