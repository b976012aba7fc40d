// Package report consumes yearly simulation snapshots and turns them into
// artifacts: PNG density frames, an assembled movie and a CSV count log.
package report

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/rossumoya/internal/sim"
)

// FrameConfig controls where frames are written and how densities map to
// color intensity.
type FrameConfig struct {
	Dir      string
	Base     string // file name prefix; frames become {Base}_{00000}.png
	CellSize int    // pixels per island cell
	HerbMax  int    // herbivore count mapped to full color saturation
	CarnMax  int    // carnivore count mapped to full color saturation
}

func (c FrameConfig) withDefaults() FrameConfig {
	if c.Base == "" {
		c.Base = "year"
	}
	if c.CellSize <= 0 {
		c.CellSize = 16
	}
	if c.HerbMax <= 0 {
		c.HerbMax = 200
	}
	if c.CarnMax <= 0 {
		c.CarnMax = 50
	}
	return c
}

// FrameWriter renders one PNG per simulated year: the terrain map next to a
// heat panel per species.
type FrameWriter struct {
	cfg     FrameConfig
	terrain [][]sim.Terrain
	counter int
}

const frameHeader = 18 // pixel rows reserved for the year label

// NewFrameWriter prepares a writer for an island with the given terrain
// layout, creating the output directory if needed.
func NewFrameWriter(cfg FrameConfig, terrain [][]sim.Terrain) (*FrameWriter, error) {
	cfg = cfg.withDefaults()
	if cfg.Dir == "" {
		return nil, fmt.Errorf("frame output directory is required")
	}
	if len(terrain) == 0 || len(terrain[0]) == 0 {
		return nil, fmt.Errorf("terrain layout is empty")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &FrameWriter{cfg: cfg, terrain: terrain}, nil
}

func terrainColor(t sim.Terrain) (r, g, b float64) {
	switch t {
	case sim.Ocean:
		return 0.45, 0.65, 0.92
	case sim.Mountain:
		return 0.62, 0.58, 0.55
	case sim.Desert:
		return 1.0, 1.0, 0.5
	case sim.Savannah:
		return 0.5, 1.0, 0.5
	case sim.Jungle:
		return 0.0, 0.6, 0.0
	default:
		return 0, 0, 0
	}
}

// WriteFrame renders the snapshot into the next numbered frame file and
// returns its path.
func (w *FrameWriter) WriteFrame(snap sim.Snapshot) (string, error) {
	img := w.Render(snap)
	path := filepath.Join(w.cfg.Dir, fmt.Sprintf("%s_%05d.png", w.cfg.Base, w.counter))
	if err := img.SavePNG(path); err != nil {
		return "", fmt.Errorf("save frame %d: %w", w.counter, err)
	}
	w.counter++
	return path, nil
}

// Render draws the three panels for one snapshot. Exposed separately from
// WriteFrame so callers can reuse the raster without touching disk.
func (w *FrameWriter) Render(snap sim.Snapshot) *gg.Context {
	rows := len(w.terrain)
	cols := len(w.terrain[0])
	cell := w.cfg.CellSize
	gap := cell // one cell of padding between panels

	width := 3*cols*cell + 2*gap
	height := rows*cell + frameHeader
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawString(fmt.Sprintf("Year %d   Herbivores %d   Carnivores %d", snap.Year, snap.Herbivores, snap.Carnivores), 4, 13)

	w.drawTerrain(dc, 0)
	w.drawHeat(dc, cols*cell+gap, snap.HerbivoreGrid, w.cfg.HerbMax, 0.13, 0.55, 0.13)
	w.drawHeat(dc, 2*(cols*cell)+2*gap, snap.CarnivoreGrid, w.cfg.CarnMax, 0.77, 0.2, 0.15)
	return dc
}

func (w *FrameWriter) drawTerrain(dc *gg.Context, xOff int) {
	cell := float64(w.cfg.CellSize)
	for r := range w.terrain {
		for c, t := range w.terrain[r] {
			dc.SetRGB(terrainColor(t))
			dc.DrawRectangle(float64(xOff)+float64(c)*cell, frameHeader+float64(r)*cell, cell, cell)
			dc.Fill()
		}
	}
}

// drawHeat shades each habitable cell from white toward the species color by
// head count; impassable cells keep a muted terrain tint so the island shape
// stays readable.
func (w *FrameWriter) drawHeat(dc *gg.Context, xOff int, grid [][]int, maxCount int, cr, cg, cb float64) {
	cell := float64(w.cfg.CellSize)
	for r := range w.terrain {
		for c, t := range w.terrain[r] {
			x := float64(xOff) + float64(c)*cell
			y := frameHeader + float64(r)*cell
			if t == sim.Ocean || t == sim.Mountain {
				tr, tg, tb := terrainColor(t)
				dc.SetRGB(0.6+0.4*tr, 0.6+0.4*tg, 0.6+0.4*tb)
			} else {
				intensity := 0.0
				if r < len(grid) && c < len(grid[r]) {
					intensity = float64(grid[r][c]) / float64(maxCount)
				}
				if intensity > 1 {
					intensity = 1
				}
				dc.SetRGB(1-(1-cr)*intensity, 1-(1-cg)*intensity, 1-(1-cb)*intensity)
			}
			dc.DrawRectangle(x, y, cell, cell)
			dc.Fill()
		}
	}
}

// MakeMovie assembles the frames written so far into a video with ffmpeg,
// which must be on PATH. Frame files are kept.
func (w *FrameWriter) MakeMovie(outPath string) error {
	if w.counter == 0 {
		return fmt.Errorf("no frames written")
	}
	pattern := filepath.Join(w.cfg.Dir, fmt.Sprintf("%s_%%05d.png", w.cfg.Base))
	cmd := exec.Command("ffmpeg",
		"-y",
		"-r", "20",
		"-i", pattern,
		"-profile:v", "baseline",
		"-level", "3.0",
		"-pix_fmt", "yuv420p",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, out)
	}
	return nil
}
