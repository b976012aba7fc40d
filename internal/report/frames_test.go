package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/appengine-ltd/rossumoya/internal/sim"
)

func testTerrain() [][]sim.Terrain {
	return [][]sim.Terrain{
		{sim.Ocean, sim.Ocean, sim.Ocean, sim.Ocean},
		{sim.Ocean, sim.Jungle, sim.Savannah, sim.Ocean},
		{sim.Ocean, sim.Desert, sim.Mountain, sim.Ocean},
		{sim.Ocean, sim.Ocean, sim.Ocean, sim.Ocean},
	}
}

func testSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Year:       3,
		Herbivores: 12,
		Carnivores: 2,
		HerbivoreGrid: [][]int{
			{0, 0, 0, 0},
			{0, 10, 2, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		CarnivoreGrid: [][]int{
			{0, 0, 0, 0},
			{0, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
	}
}

func TestNewFrameWriterValidation(t *testing.T) {
	if _, err := NewFrameWriter(FrameConfig{}, testTerrain()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if _, err := NewFrameWriter(FrameConfig{Dir: t.TempDir()}, nil); err == nil {
		t.Fatalf("expected error for empty terrain")
	}
}

func TestRenderDimensions(t *testing.T) {
	w, err := NewFrameWriter(FrameConfig{Dir: t.TempDir(), CellSize: 10}, testTerrain())
	if err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}
	dc := w.Render(testSnapshot())
	// Three 4-column panels of 10px cells with one-cell gaps, plus the label strip.
	if got, want := dc.Width(), 3*4*10+2*10; got != want {
		t.Fatalf("frame width = %d, want %d", got, want)
	}
	if got, want := dc.Height(), 4*10+18; got != want {
		t.Fatalf("frame height = %d, want %d", got, want)
	}
}

func TestWriteFrameNumbersFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFrameWriter(FrameConfig{Dir: dir, Base: "year", CellSize: 4}, testTerrain())
	if err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}

	first, err := w.WriteFrame(testSnapshot())
	if err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	second, err := w.WriteFrame(testSnapshot())
	if err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	if filepath.Base(first) != "year_00000.png" || filepath.Base(second) != "year_00001.png" {
		t.Fatalf("frame names = %q, %q", first, second)
	}
	for _, p := range []string{first, second} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("frame %s is empty", p)
		}
	}
}

func TestMakeMovieWithoutFrames(t *testing.T) {
	w, err := NewFrameWriter(FrameConfig{Dir: t.TempDir()}, testTerrain())
	if err != nil {
		t.Fatalf("NewFrameWriter: %v", err)
	}
	if err := w.MakeMovie(filepath.Join(t.TempDir(), "out.mp4")); err == nil {
		t.Fatalf("expected error when no frames were written")
	}
}
