package sim

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	d := summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almostEqual(d.Mean, 5) {
		t.Fatalf("mean = %v, want 5", d.Mean)
	}
	// Sample standard deviation of the classic 2,4,4,4,5,5,7,9 set.
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(d.StdDev, want) {
		t.Fatalf("stddev = %v, want %v", d.StdDev, want)
	}
	if d.Min != 2 || d.Max != 9 {
		t.Fatalf("min/max = %v/%v, want 2/9", d.Min, d.Max)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	d := summarize([]float64{3.5})
	if !almostEqual(d.Mean, 3.5) || d.StdDev != 0 {
		t.Fatalf("single sample: mean=%v stddev=%v", d.Mean, d.StdDev)
	}
	if d.Min != 3.5 || d.Max != 3.5 {
		t.Fatalf("single sample min/max = %v/%v", d.Min, d.Max)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	d := summarize(nil)
	if d.Mean != 0 || d.StdDev != 0 || d.Min != 0 || d.Max != 0 || len(d.Samples) != 0 {
		t.Fatalf("empty summary not zero valued: %+v", d)
	}
}
