package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// GenerateGeography produces a random island map of the given dimensions as
// a terrain token string accepted by ParseGeography. Elevation comes from
// layered value noise shaped by a radial falloff, so land clusters in the
// middle and the border is always Ocean. Moisture noise splits the lowlands
// into Desert, Savannah and Jungle. The result is deterministic per seed.
func GenerateGeography(seed int64, width, height int) (string, error) {
	if width < 3 || height < 3 {
		return "", fmt.Errorf("island dimensions must be at least 3x3, got %dx%d", width, height)
	}

	var b strings.Builder
	b.Grow(height * (width + 1))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.WriteByte(terrainAt(seed, x, y, width, height).Token())
		}
		if y < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func terrainAt(seed int64, x, y, width, height int) Terrain {
	if x == 0 || y == 0 || x == width-1 || y == height-1 {
		return Ocean
	}

	// Distance from the map center, normalized so the border sits at 1.
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	dx := (float64(x) - cx) / cx
	dy := (float64(y) - cy) / cy
	falloff := math.Sqrt(dx*dx + dy*dy)

	elev := layeredNoise(seed, float64(x), float64(y), "elev") - falloff*0.65
	if elev < 0.05 {
		return Ocean
	}
	if elev > 0.52 {
		return Mountain
	}

	moist := layeredNoise(seed+31, float64(x), float64(y), "moist")
	switch {
	case moist < 0.35:
		return Desert
	case moist < 0.6:
		return Savannah
	default:
		return Jungle
	}
}

func layeredNoise(seed int64, x, y float64, salt string) float64 {
	scales := []float64{13, 7, 3}
	amplitude := 1.0
	total := 0.0
	weight := 0.0
	for i, scale := range scales {
		s := fmt.Sprintf("%s:%d", salt, i)
		total += valueNoise2D(seed, x, y, scale, s) * amplitude
		weight += amplitude
		amplitude *= 0.5
	}
	return total / weight
}

func valueNoise2D(seed int64, x, y, cellSize float64, salt string) float64 {
	gx := x / cellSize
	gy := y / cellSize
	x0 := int(math.Floor(gx))
	y0 := int(math.Floor(gy))
	x1 := x0 + 1
	y1 := y0 + 1
	tx := smoothstep(gx - float64(x0))
	ty := smoothstep(gy - float64(y0))
	n00 := hashUnitFloat(seed, x0, y0, salt)
	n10 := hashUnitFloat(seed, x1, y0, salt)
	n01 := hashUnitFloat(seed, x0, y1, salt)
	n11 := hashUnitFloat(seed, x1, y1, salt)
	nx0 := n00 + (n10-n00)*tx
	nx1 := n01 + (n11-n01)*tx
	return nx0 + (nx1-nx0)*ty
}

func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func hashUnitFloat(seed int64, x, y int, salt string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%d:%d:%s", seed, x, y, salt)))
	return float64(h.Sum64()&0xfffffff) / float64(0xfffffff)
}
