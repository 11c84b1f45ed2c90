package record

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store holds the labeled samples loaded for one analysis session. Samples
// are immutable once loaded; labels keep their insertion order.
type Store struct {
	labels  []string
	samples map[string]Sample
}

func NewStore() *Store {
	return &Store{samples: map[string]Sample{}}
}

// Load ingests a cached tabular benchmark file under the given label.
// Format is "json" or "csv"; when empty it is inferred from the file
// extension.
func (s *Store) Load(label, path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	var (
		sample Sample
		err    error
	)
	switch format {
	case "json":
		sample, err = loadJSON(path)
	case "csv":
		sample, err = loadCSV(path)
	default:
		err = fmt.Errorf("unsupported format %q (want json or csv)", format)
	}
	if err != nil {
		return fmt.Errorf("loading dataset %q: %w", label, err)
	}
	return s.Add(label, sample)
}

// Add registers an already-built sample under a label.
func (s *Store) Add(label string, sample Sample) error {
	if label == "" {
		return fmt.Errorf("dataset label is required")
	}
	if _, exists := s.samples[label]; exists {
		return fmt.Errorf("duplicate dataset label %q", label)
	}
	for i, r := range sample {
		if err := validateRecord(r); err != nil {
			return fmt.Errorf("dataset %q record %d: %w", label, i, err)
		}
	}
	s.labels = append(s.labels, label)
	s.samples[label] = sample
	return nil
}

// Sample returns the ordered run records loaded under label.
func (s *Store) Sample(label string) (Sample, error) {
	sample, ok := s.samples[label]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", label)
	}
	return sample, nil
}

// Labels returns dataset labels in load order.
func (s *Store) Labels() []string {
	return append([]string(nil), s.labels...)
}

func validateRecord(r RunRecord) error {
	if r.Accuracy < 0 || r.Accuracy > 1 {
		return fmt.Errorf("accuracy %v outside [0,1]", r.Accuracy)
	}
	if r.Cost < 0 {
		return fmt.Errorf("negative cost %v", r.Cost)
	}
	return nil
}

func loadJSON(path string) (Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var sample Sample
	if err := json.Unmarshal(data, &sample); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sample, nil
}

func loadCSV(path string) (Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sample := make(Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 3 {
			return nil, fmt.Errorf("%s row %d: want 3 columns, got %d", path, i+2, len(row))
		}
		accuracy, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad accuracy %q", path, i+2, row[1])
		}
		cost, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad cost %q", path, i+2, row[2])
		}
		sample = append(sample, RunRecord{ArchitectureID: row[0], Accuracy: accuracy, Cost: cost})
	}
	return sample, nil
}

func checkHeader(header []string) error {
	want := []string{"architecture_id", "accuracy", "cost"}
	if len(header) != len(want) {
		return fmt.Errorf("want header %v, got %v", want, header)
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != want[i] {
			return fmt.Errorf("want header %v, got %v", want, header)
		}
	}
	return nil
}
