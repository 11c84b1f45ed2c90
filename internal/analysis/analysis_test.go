package analysis_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/sdendorfer/nasbudget/internal/analysis"
	"github.com/sdendorfer/nasbudget/internal/config"
	"github.com/sdendorfer/nasbudget/internal/record"
)

func testStore(t *testing.T) *record.Store {
	t.Helper()
	store := record.NewStore()
	re := record.Sample{
		{ArchitectureID: "e1", Accuracy: 0.91, Cost: 100},
		{ArchitectureID: "e2", Accuracy: 0.93, Cost: 120},
		{ArchitectureID: "e3", Accuracy: 0.89, Cost: 90},
		{ArchitectureID: "e4", Accuracy: 0.94, Cost: 150},
	}
	reinforce := record.Sample{
		{ArchitectureID: "r1", Accuracy: 0.88, Cost: 80},
		{ArchitectureID: "r2", Accuracy: 0.92, Cost: 110},
		{ArchitectureID: "r3", Accuracy: 0.90, Cost: 95},
	}
	if err := store.Add("re-30", re); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add("reinforce-30", reinforce); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		Datasets: []config.Dataset{
			{Label: "re-30", Path: "unused.json"},
			{Label: "reinforce-30", Path: "unused.json"},
		},
		Experiments: config.Experiments{
			Success: []config.SuccessExperiment{
				{Dataset: "re-30", Thresholds: []float64{0.9, 0.93}, Repeats: []int{1, 10}},
			},
			CLT: []config.CLTExperiment{
				{Dataset: "re-30", Metric: "accuracy", Bins: 5},
			},
			Budget: []config.BudgetExperiment{
				{
					Name:           "re-vs-reinforce",
					StrategyA:      "re-30",
					StrategyB:      "reinforce-30",
					TargetAccuracy: 0.94,
					BudgetGrid:     []float64{200, 500, 1000},
					Repetitions:    50,
					Seed:           9,
				},
			},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	bundle, err := analysis.Run(testStore(t), testConfig(), 2, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(bundle.Success) != 2 {
		t.Fatalf("success summaries: got %d, want 2", len(bundle.Success))
	}
	for _, s := range bundle.Success {
		if len(s.Results) != 2 {
			t.Errorf("dataset %s threshold %v: got %d results, want 2", s.Dataset, s.Threshold, len(s.Results))
		}
	}

	if len(bundle.CLT) != 1 {
		t.Fatalf("clt summaries: got %d, want 1", len(bundle.CLT))
	}
	clt := bundle.CLT[0]
	if clt.Params.SampleSize != 4 {
		t.Errorf("sample_size: got %d, want 4", clt.Params.SampleSize)
	}
	if len(clt.Overlay) != len(clt.Histogram.Bins) {
		t.Errorf("overlay length %d does not match bins %d", len(clt.Overlay), len(clt.Histogram.Bins))
	}

	if len(bundle.Budget) != 1 {
		t.Fatalf("budget summaries: got %d, want 1", len(bundle.Budget))
	}
	b := bundle.Budget[0]
	if len(b.CurveA) != 3 || len(b.CurveB) != 3 {
		t.Errorf("curve lengths: got %d and %d, want 3", len(b.CurveA), len(b.CurveB))
	}
	if b.CostToTargetA == nil || *b.CostToTargetA <= 0 {
		t.Errorf("cost to target A: got %v, want positive", b.CostToTargetA)
	}
	// Reinforce never reaches 0.94, so its expected cost is unreachable.
	if b.CostToTargetB != nil {
		t.Errorf("cost to target B: got %v, want nil", *b.CostToTargetB)
	}
}

func TestRunFailsOnBadExperiment(t *testing.T) {
	cfg := testConfig()
	cfg.Experiments.CLT[0].Metric = "latency"
	if _, err := analysis.Run(testStore(t), cfg, 1, discardLogger()); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestRunFailsOnMissingBudgetGrid(t *testing.T) {
	cfg := testConfig()
	cfg.Experiments.Budget[0].BudgetGrid = nil
	cfg.Experiments.Budget[0].Grid = nil
	if _, err := analysis.Run(testStore(t), cfg, 1, discardLogger()); err == nil {
		t.Error("expected error for budget experiment without a grid")
	}
}
