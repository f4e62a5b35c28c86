package backtest

import (
	"context"
	"runtime"
	"sync"
)

// Outcome is one item of a batch: either a completed result or that item's
// error. Batch items never abort their siblings.
type Outcome struct {
	Result *Result
	Err    error
}

// RunBatch executes every request concurrently and collects per-item
// outcomes keyed by the request's map key. Runs share no mutable state, so
// no locking beyond the result map is needed. workers <= 0 uses NumCPU.
func (e *Engine) RunBatch(ctx context.Context, reqs map[string]Request, workers int) map[string]Outcome {
	out := make(map[string]Outcome, len(reqs))
	if len(reqs) == 0 {
		return out
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	type item struct {
		id  string
		req Request
	}
	jobs := make(chan item)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range jobs {
				res, err := e.Run(ctx, it.req)

				mu.Lock()
				out[it.id] = Outcome{Result: res, Err: err}
				mu.Unlock()
			}
		}()
	}

	for id, req := range reqs {
		jobs <- item{id: id, req: req}
	}
	close(jobs)
	wg.Wait()

	return out
}
