package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdendorfer/nasbudget/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nasbudget.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validConfig = `
datasets:
  - label: re-30
    path: data/re_30.json
  - label: reinforce-30
    path: data/reinforce_30.csv
    format: csv
experiments:
  success:
    - dataset: re-30
      thresholds: [0.93, 0.94]
      repeats: [1, 10, 30]
  clt:
    - dataset: re-30
  budget:
    - name: re-vs-reinforce
      strategy_a: re-30
      strategy_b: reinforce-30
      target_accuracy: 0.94
      grid:
        min: 10000
        max: 200000
        steps: 20
results:
  dir: out
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, validConfig)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Datasets) != 2 {
		t.Errorf("datasets: got %d, want 2", len(cfg.Datasets))
	}
	if cfg.Results.Dir != "out" {
		t.Errorf("results dir: got %q, want %q", cfg.Results.Dir, "out")
	}
	// Defaults filled in by validate.
	if cfg.Experiments.CLT[0].Metric != "accuracy" {
		t.Errorf("clt metric default: got %q, want %q", cfg.Experiments.CLT[0].Metric, "accuracy")
	}
	if cfg.Experiments.CLT[0].Bins != 30 {
		t.Errorf("clt bins default: got %d, want 30", cfg.Experiments.CLT[0].Bins)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default: got %q, want %q", cfg.Log.Level, "info")
	}
}

func TestGridPoints(t *testing.T) {
	g := config.GridSpec{Min: 0, Max: 100, Steps: 5}
	points := g.Points()
	want := []float64{0, 25, 50, 75, 100}
	if len(points) != len(want) {
		t.Fatalf("points: got %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("points[%d]: got %f, want %f", i, points[i], want[i])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no datasets",
			content: "datasets: []\n",
			wantErr: "no datasets",
		},
		{
			name: "duplicate label",
			content: `
datasets:
  - {label: re, path: a.json}
  - {label: re, path: b.json}
`,
			wantErr: "duplicate dataset label",
		},
		{
			name: "unknown dataset in experiment",
			content: `
datasets:
  - {label: re, path: a.json}
experiments:
  success:
    - dataset: nope
      thresholds: [0.9]
`,
			wantErr: "unknown dataset",
		},
		{
			name: "budget without grid",
			content: `
datasets:
  - {label: re, path: a.json}
experiments:
  budget:
    - strategy_a: re
      strategy_b: re
      target_accuracy: 0.9
`,
			wantErr: "budget_grid or grid is required",
		},
		{
			name: "grid with one step",
			content: `
datasets:
  - {label: re, path: a.json}
experiments:
  budget:
    - strategy_a: re
      strategy_b: re
      target_accuracy: 0.9
      grid: {min: 0, max: 100, steps: 1}
`,
			wantErr: "steps must be at least 2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("got %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NASBUDGET_RESULTS_DIR", "/tmp/override")
	path := writeConfig(t, validConfig)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Results.Dir != "/tmp/override" {
		t.Errorf("results dir: got %q, want env override", cfg.Results.Dir)
	}
}
