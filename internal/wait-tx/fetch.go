package waittx

import "context"

// fetched is the result of fetchWithRetry: either Found with Value, or
// exhausted after Attempts calls.
type fetched[T any] struct {
	Value    T
	Found    bool
	Attempts int
}

// fetchWithRetry calls fn up to attempts times, sleeping per backoff between
// calls. fn reports absence with found=false, which is retried; any error
// stops the loop and is returned.
func fetchWithRetry[T any](ctx context.Context, attempts int, backoff Backoff, fn func(context.Context) (T, bool, error)) (fetched[T], error) {
	if attempts < 1 {
		attempts = 1
	}

	var res fetched[T]
	for attempt := 1; attempt <= attempts; attempt++ {
		v, found, err := fn(ctx)
		res = fetched[T]{Value: v, Found: found, Attempts: attempt}
		if err != nil || found {
			return res, err
		}
		if attempt == attempts {
			break
		}
		if err := wait(ctx, backoff.Next(attempt)); err != nil {
			return res, err
		}
	}
	return res, nil
}
