package utils

import (
	"fmt"
	"sync"
)

// ParallelMap runs fn over items with at most limit goroutines. A failing
// item never aborts the batch; every failure comes back as one error in the
// returned slice.
func ParallelMap[T any](items []T, limit int, fn func(item T) error) []error {
	if limit < 1 {
		limit = 1
	}

	jobs := make(chan T, len(items))
	results := make(chan error, len(items))

	var wg sync.WaitGroup
	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				func(item T) {
					defer func() {
						if r := recover(); r != nil {
							results <- fmt.Errorf("panic in parallel task: %v", r)
						}
					}()
					if err := fn(item); err != nil {
						results <- err
					}
				}(item)
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	wg.Wait()
	close(results)

	var errs []error
	for err := range results {
		errs = append(errs, err)
	}
	return errs
}
