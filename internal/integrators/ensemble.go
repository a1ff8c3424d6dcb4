package integrators

import (
	"context"
	"sync"

	"github.com/san-kum/slopefield/internal/dynamo"
)

// Result is one seed's trajectory and the error its walk ended with, if
// any. A step-limit error still carries the truncated trajectory.
type Result struct {
	Trajectory Trajectory
	Err        error
}

// Ensemble traces many seeds at once. f must be safe for concurrent
// evaluation; compiled expressions are.
type Ensemble struct {
	tracer  *Tracer
	workers int
}

// NewEnsemble runs at most workers walks at a time. workers < 1 means one
// goroutine per seed.
func NewEnsemble(t *Tracer, workers int) *Ensemble {
	return &Ensemble{tracer: t, workers: workers}
}

// Run returns one Result per seed, in seed order. Seeds not started before
// ctx is done get ctx.Err().
func (e *Ensemble) Run(ctx context.Context, f dynamo.SlopeFunc, seeds []dynamo.Point, b dynamo.Bounds, h float64) []Result {
	results := make([]Result, len(seeds))
	workers := e.workers
	if workers < 1 || workers > len(seeds) {
		workers = len(seeds)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx].Trajectory, results[idx].Err = e.tracer.Trace(f, seeds[idx], b, h)
			}
		}()
	}

	for i := range seeds {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(seeds); j++ {
				results[j] = Result{Trajectory: Trajectory{Seed: seeds[j]}, Err: err}
			}
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
