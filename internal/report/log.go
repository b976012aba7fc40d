package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/appengine-ltd/rossumoya/internal/sim"
)

// CountLogger appends one CSV row of population counts per simulated year.
type CountLogger struct {
	file *os.File
	w    *csv.Writer
}

// NewCountLogger creates (or truncates) the log file and writes the header.
func NewCountLogger(path string) (*CountLogger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create count log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"year", "herbivores", "carnivores", "births", "deaths"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write count log header: %w", err)
	}
	return &CountLogger{file: f, w: w}, nil
}

// Append writes the snapshot's aggregate counts as one row.
func (l *CountLogger) Append(snap sim.Snapshot) error {
	row := []string{
		strconv.Itoa(snap.Year),
		strconv.Itoa(snap.Herbivores),
		strconv.Itoa(snap.Carnivores),
		strconv.Itoa(snap.HerbivoreBirths + snap.CarnivoreBirths),
		strconv.Itoa(snap.HerbivoreDeaths + snap.CarnivoreDeaths),
	}
	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("write count log row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (l *CountLogger) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("flush count log: %w", err)
	}
	return l.file.Close()
}
