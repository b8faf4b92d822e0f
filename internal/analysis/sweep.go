package analysis

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/ivp"
)

// TotalErrorVsN runs every method and the exact solution at each step count
// n = 1..params.N and records the maximum absolute error per run. The work
// is quadratic in params.N; step counts are spread across the analyzer's
// workers and each exact trajectory is computed once per n.
func (a *Analyzer) TotalErrorVsN(ctx context.Context, params ivp.Params) (*Sweep, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	nMax := params.N
	sweep := &Sweep{
		Ns:     make([]int, nMax),
		Series: make([]Series, len(a.methods)),
	}
	for k := range sweep.Ns {
		sweep.Ns[k] = k + 1
	}
	for j, e := range a.methods {
		sweep.Series[j] = Series{Name: e.Label, Color: e.Color, Values: make([]float64, nMax)}
	}

	start := time.Now()
	err := ParallelFor(ctx, nMax, a.workers, func(k int) error {
		run := params.WithN(k + 1)
		exact, err := integrators.Solve(a.exact.Method, a.problem, run)
		if err != nil {
			return err
		}
		for j, e := range a.methods {
			approx, err := integrators.Solve(e.Method, a.problem, run)
			if err != nil {
				return err
			}
			sweep.Series[j].Values[k] = maxAbsDiff(approx, exact)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("error sweep finished",
		"problem", a.problem.Name,
		"n_max", nMax,
		"methods", len(a.methods),
		"workers", a.workers,
		"elapsed", time.Since(start))

	return sweep, nil
}

func maxAbsDiff(approx, exact ivp.Trajectory) float64 {
	return maxOrZero(GlobalError(approx, exact))
}

// ParallelFor calls fn for every index in [0, n) on up to workers goroutines.
// Indices are dealt round-robin so workers see a similar mix of cheap and
// expensive step counts. The first error, or ctx's error, stops the loop.
func ParallelFor(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < n; i += workers {
				select {
				case <-ctx.Done():
					fail(ctx.Err())
					return
				default:
				}
				if err := fn(i); err != nil {
					fail(err)
					return
				}
			}
		}(w)
	}

	wg.Wait()
	return firstErr
}

// ObservedOrder estimates the convergence order p from errors e1 at step
// count n and e2 at step count ratio*n, assuming e ~ C*h^p.
func ObservedOrder(e1, e2, ratio float64) float64 {
	if e1 <= 0 || e2 <= 0 || ratio <= 1 {
		return math.NaN()
	}
	return math.Log(e1/e2) / math.Log(ratio)
}
