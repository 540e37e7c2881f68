package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"campus_market/internal/domain"
)

// ProbeResult reports which candidate route, if any, answered an operation.
type ProbeResult struct {
	Op      string        `json:"op"`
	Route   string        `json:"route,omitempty"`
	Status  int           `json:"status,omitempty"`
	Usable  bool          `json:"usable"`
	Err     string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Probe runs a GET chain for each op with at most workers in flight.
// Results keep the order of ops.
func Probe(ctx context.Context, exec domain.Executor, ops []string, workers int) []ProbeResult {
	if workers <= 0 {
		workers = 1
	}
	out := make([]ProbeResult, len(ops))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, op := range ops {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			out[i] = ProbeResult{Op: op, Err: err.Error()}
			continue
		}
		wg.Add(1)
		go func(i int, op string) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = probeOne(ctx, exec, op)
		}(i, op)
	}
	wg.Wait()
	return out
}

func probeOne(ctx context.Context, exec domain.Executor, op string) ProbeResult {
	start := time.Now()
	res := ProbeResult{Op: op}
	resp, err := exec.Execute(ctx, Candidates(op, "probe"), domain.Request{Method: http.MethodGet})
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = err.Error()
		log.Debug().Str("op", op).Err(err).Msg("probe exhausted")
		return res
	}
	res.Route, res.Status = resp.Route, resp.Status
	env := unwrap(resp.Body)
	res.Usable = env.kind != envNone
	return res
}
