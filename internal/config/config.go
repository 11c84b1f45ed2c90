package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Datasets    []Dataset   `yaml:"datasets"`
	Experiments Experiments `yaml:"experiments"`
	Results     Results     `yaml:"results"`
	Log         Log         `yaml:"log"`
}

// Dataset points at one cached tabular benchmark file.
type Dataset struct {
	Label  string `yaml:"label"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

type Experiments struct {
	Success []SuccessExperiment `yaml:"success"`
	CLT     []CLTExperiment     `yaml:"clt"`
	Budget  []BudgetExperiment  `yaml:"budget"`
}

// SuccessExperiment estimates success probabilities for every threshold and
// repeat count combination over one dataset.
type SuccessExperiment struct {
	Dataset    string    `yaml:"dataset"`
	Thresholds []float64 `yaml:"thresholds"`
	Repeats    []int     `yaml:"repeats"`
}

// CLTExperiment fits a normal approximation to one dataset metric and
// buckets the empirical values for the overlay figure.
type CLTExperiment struct {
	Dataset string `yaml:"dataset"`
	Metric  string `yaml:"metric"`
	Bins    int    `yaml:"bins"`
}

// BudgetExperiment compares two strategies' expected best accuracy across
// a budget grid, given either explicitly or as a min/max/steps spec.
type BudgetExperiment struct {
	Name           string    `yaml:"name"`
	StrategyA      string    `yaml:"strategy_a"`
	StrategyB      string    `yaml:"strategy_b"`
	TargetAccuracy float64   `yaml:"target_accuracy"`
	BudgetGrid     []float64 `yaml:"budget_grid"`
	Grid           *GridSpec `yaml:"grid"`
	Repetitions    int       `yaml:"repetitions"`
	Seed           int64     `yaml:"seed"`
}

type GridSpec struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

// Points expands the spec into an ascending grid of Steps budgets from Min
// to Max inclusive.
func (g GridSpec) Points() []float64 {
	step := (g.Max - g.Min) / float64(g.Steps-1)
	points := make([]float64, g.Steps)
	for i := range points {
		points[i] = g.Min + float64(i)*step
	}
	points[g.Steps-1] = g.Max
	return points
}

type Results struct {
	Dir string `yaml:"dir" envconfig:"NASBUDGET_RESULTS_DIR"`
}

type Log struct {
	Level  string `yaml:"level" envconfig:"NASBUDGET_LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"NASBUDGET_LOG_FORMAT"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading env overrides: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Datasets) == 0 {
		return fmt.Errorf("no datasets defined")
	}
	labels := map[string]bool{}
	for i, d := range cfg.Datasets {
		if d.Label == "" {
			return fmt.Errorf("dataset %d: label is required", i)
		}
		if d.Path == "" {
			return fmt.Errorf("dataset %q: path is required", d.Label)
		}
		if labels[d.Label] {
			return fmt.Errorf("duplicate dataset label %q", d.Label)
		}
		labels[d.Label] = true
	}

	for i := range cfg.Experiments.Success {
		e := &cfg.Experiments.Success[i]
		if !labels[e.Dataset] {
			return fmt.Errorf("success experiment %d: unknown dataset %q", i, e.Dataset)
		}
		if len(e.Thresholds) == 0 {
			return fmt.Errorf("success experiment %d: at least one threshold is required", i)
		}
		if len(e.Repeats) == 0 {
			e.Repeats = []int{1}
		}
	}

	for i := range cfg.Experiments.CLT {
		e := &cfg.Experiments.CLT[i]
		if !labels[e.Dataset] {
			return fmt.Errorf("clt experiment %d: unknown dataset %q", i, e.Dataset)
		}
		if e.Metric == "" {
			e.Metric = "accuracy"
		}
		if e.Bins == 0 {
			e.Bins = 30
		}
		if e.Bins < 1 {
			return fmt.Errorf("clt experiment %d: bins must be at least 1", i)
		}
	}

	for i := range cfg.Experiments.Budget {
		e := &cfg.Experiments.Budget[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("budget-%d", i)
		}
		if !labels[e.StrategyA] {
			return fmt.Errorf("budget experiment %q: unknown dataset %q", e.Name, e.StrategyA)
		}
		if !labels[e.StrategyB] {
			return fmt.Errorf("budget experiment %q: unknown dataset %q", e.Name, e.StrategyB)
		}
		if len(e.BudgetGrid) == 0 && e.Grid == nil {
			return fmt.Errorf("budget experiment %q: budget_grid or grid is required", e.Name)
		}
		if e.Grid != nil {
			if e.Grid.Steps < 2 {
				return fmt.Errorf("budget experiment %q: grid steps must be at least 2", e.Name)
			}
			if e.Grid.Max <= e.Grid.Min {
				return fmt.Errorf("budget experiment %q: grid max must exceed min", e.Name)
			}
		}
		if e.Repetitions < 0 {
			return fmt.Errorf("budget experiment %q: repetitions must not be negative", e.Name)
		}
	}

	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	return nil
}
