package waittx

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/swapkit-labs/sdk-go/types"
)

// firstOf runs every task concurrently and returns the first result. The
// context handed to the tasks is cancelled on return so the losers unwind;
// they are not awaited. If ctx ends before any task returns, ctx.Err() is
// returned.
func firstOf[T any](ctx context.Context, tasks ...func(context.Context) T) (T, error) {
	var zero T
	if len(tasks) == 0 {
		return zero, nil
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan T, len(tasks))
	for _, task := range tasks {
		go func(task func(context.Context) T) {
			results <- task(raceCtx)
		}(task)
	}

	select {
	case res := <-results:
		return res, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// raceResult is the outcome of one confirmation strategy. Err is set only
// for fatal errors; expiry is reported through Outcome.
type raceResult struct {
	Outcome types.Outcome
	Source  string
	Err     error
}

type strategy struct {
	name string
	src  Source
}

func (s strategy) task(sig solana.Signature, window types.BlockhashWithExpiry) func(context.Context) raceResult {
	return func(ctx context.Context) raceResult {
		outcome, err := s.src.Wait(ctx, sig, window)
		return raceResult{Outcome: outcome, Source: s.name, Err: err}
	}
}

// raceConfirmation resolves with whichever strategy finishes first.
func raceConfirmation(ctx context.Context, sig solana.Signature, window types.BlockhashWithExpiry, strategies ...strategy) raceResult {
	tasks := make([]func(context.Context) raceResult, 0, len(strategies))
	for _, s := range strategies {
		if s.src == nil {
			continue
		}
		tasks = append(tasks, s.task(sig, window))
	}

	res, err := firstOf(ctx, tasks...)
	if err != nil {
		return raceResult{Err: err}
	}
	if len(tasks) == 0 {
		return raceResult{Err: errNoStrategies}
	}
	return res
}
