package runner_test

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sdendorfer/nasbudget/internal/runner"
)

func TestPool(t *testing.T) {
	var count atomic.Int32
	jobs := make([]runner.Job, 10)
	for i := range jobs {
		jobs[i] = runner.Job{
			Name: fmt.Sprintf("job-%d", i),
			Run: func() error {
				count.Add(1)
				return nil
			},
		}
	}
	errs := runner.RunPool(3, jobs)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if count.Load() != 10 {
		t.Errorf("expected 10 jobs, got %d", count.Load())
	}
}

func TestPoolErrorsCarryJobName(t *testing.T) {
	jobs := []runner.Job{
		{Name: "ok", Run: func() error { return nil }},
		{Name: "clt nats-re-30", Run: func() error { return fmt.Errorf("boom") }},
	}
	errs := runner.RunPool(2, jobs)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Error(), "clt nats-re-30") {
		t.Errorf("error %q does not name the failed job", errs[0])
	}
}
