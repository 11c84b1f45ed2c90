package stats_test

import (
	"errors"
	"testing"

	"github.com/sdendorfer/nasbudget/internal/record"
	"github.com/sdendorfer/nasbudget/internal/stats"
)

func TestNewHistogram(t *testing.T) {
	sample := sampleWithAccuracies(0.0, 0.25, 0.5, 0.75, 1.0)
	hist, err := stats.NewHistogram(sample, stats.MetricAccuracy, 4)
	if err != nil {
		t.Fatalf("NewHistogram: %v", err)
	}
	if len(hist.Bins) != 4 {
		t.Fatalf("bins: got %d, want 4", len(hist.Bins))
	}
	total := 0
	for _, b := range hist.Bins {
		total += b.Count
	}
	if total != len(sample) {
		t.Errorf("total count: got %d, want %d", total, len(sample))
	}
	// Maximum value lands in the last (right-closed) bin.
	if hist.Bins[3].Count < 2 {
		t.Errorf("last bin: got %d, want at least 2 (0.75 and 1.0)", hist.Bins[3].Count)
	}
}

func TestNewHistogramConstantSample(t *testing.T) {
	sample := sampleWithAccuracies(0.7, 0.7, 0.7)
	hist, err := stats.NewHistogram(sample, stats.MetricAccuracy, 10)
	if err != nil {
		t.Fatalf("NewHistogram: %v", err)
	}
	if len(hist.Bins) != 1 {
		t.Fatalf("bins: got %d, want 1", len(hist.Bins))
	}
	if hist.Bins[0].Count != 3 {
		t.Errorf("count: got %d, want 3", hist.Bins[0].Count)
	}
}

func TestNewHistogramErrors(t *testing.T) {
	if _, err := stats.NewHistogram(record.Sample{}, stats.MetricAccuracy, 10); !errors.Is(err, stats.ErrInsufficientData) {
		t.Errorf("empty sample: got %v, want ErrInsufficientData", err)
	}
	if _, err := stats.NewHistogram(sampleWithAccuracies(0.5, 0.6), stats.MetricAccuracy, 0); !errors.Is(err, stats.ErrInvalidParameter) {
		t.Errorf("zero bins: got %v, want ErrInvalidParameter", err)
	}
}

func TestOverlayMatchesBins(t *testing.T) {
	sample := sampleWithAccuracies(0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
	hist, err := stats.NewHistogram(sample, stats.MetricAccuracy, 5)
	if err != nil {
		t.Fatalf("NewHistogram: %v", err)
	}
	params, err := stats.Approximate(sample, stats.MetricAccuracy)
	if err != nil {
		t.Fatalf("Approximate: %v", err)
	}
	overlay := hist.Overlay(params)
	if len(overlay) != len(hist.Bins) {
		t.Fatalf("overlay length: got %d, want %d", len(overlay), len(hist.Bins))
	}
	for i, v := range overlay {
		if v < 0 {
			t.Errorf("overlay[%d]: got %f, want non-negative", i, v)
		}
	}
}
