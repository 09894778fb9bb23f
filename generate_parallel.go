package chmgen

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// searchParallel runs trials on cfg.workers goroutines.
//
// Workers claim trial numbers from a shared counter. Because a trial's hash
// functions derive from (seed, trial) alone, a trial computes the same
// candidate no matter which worker runs it; only which trial wins the race
// varies between runs. The first acyclic candidate is kept and the
// remaining workers drain.
//
// A worker that claims a trial past the size ceiling retires without
// stopping the others: trials still in flight at smaller sizes may yet
// succeed. The search is exhausted only once every worker has retired with
// no winner.
func searchParallel(keys []string, cfg *config, ceiling int) (*Result, error) {
	var (
		next   atomic.Int64
		stop   atomic.Bool
		mu     sync.Mutex
		winner *Result
	)

	var g errgroup.Group
	for range cfg.workers {
		g.Go(func() error {
			for !stop.Load() {
				trial := int(next.Add(1) - 1)
				n := sizeForTrial(trial, len(keys), cfg.trials, cfg.pow2)
				if n > ceiling {
					return nil
				}
				res, err := attempt(keys, cfg, n, trial)
				if errors.Is(err, errTrialFailed) {
					continue
				}
				if err != nil {
					stop.Store(true)
					return err
				}
				mu.Lock()
				if winner == nil {
					winner = res
				}
				mu.Unlock()
				stop.Store(true)
				return nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, fmt.Errorf("%w: %d keys", chmerrors.ErrSearchExhausted, len(keys))
	}
	return winner, nil
}
