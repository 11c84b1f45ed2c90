package runner

import (
	"fmt"
	"sync"
)

// Job is one independent experiment computation. Name identifies it in
// collected errors.
type Job struct {
	Name string
	Run  func() error
}

// RunPool executes jobs with at most maxWorkers concurrently and returns
// every failure, wrapped with its job name. Jobs must not share mutable
// state; each experiment writes only its own result slot.
func RunPool(maxWorkers int, jobs []Job) []error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	sem := make(chan struct{}, maxWorkers)

	for _, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j Job) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := j.Run(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", j.Name, err))
				mu.Unlock()
			}
		}(job)
	}
	wg.Wait()
	return errs
}
