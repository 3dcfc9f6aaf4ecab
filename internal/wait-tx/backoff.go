package waittx

import (
	"context"
	"math"
	"math/rand"
	"time"

	clientconfig "github.com/swapkit-labs/sdk-go/client/config"
)

type constantBackoff struct{ every time.Duration }

func (b constantBackoff) Next(int) time.Duration { return b.every }

type exponentialBackoff struct {
	initial    time.Duration
	multiplier float64
	max        time.Duration
	jitter     float64
	randFn     func() float64
}

func (b *exponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	// Cap values before converting to time.Duration to avoid overflow.
	const safetyMargin = 2048.0
	maxDurationFloat := float64(math.MaxInt64) - safetyMargin

	initial := b.initial
	if initial <= 0 {
		initial = time.Second
	}
	multiplier := b.multiplier
	if multiplier <= 1 {
		multiplier = 1
	}
	base := float64(initial)
	if multiplier > 1 {
		base *= math.Pow(multiplier, float64(attempt-1))
	}
	if b.max > 0 {
		base = math.Min(base, math.Min(float64(b.max), maxDurationFloat))
	}
	base = math.Max(0, math.Min(base, maxDurationFloat))

	delay := time.Duration(base)
	jitter := math.Max(0, math.Min(b.jitter, 1))
	if jitter > 0 {
		randFn := b.randFn
		if randFn == nil {
			randFn = rand.Float64
		}
		factor := math.Max(0, 1+(randFn()*2-1)*jitter)
		delay = time.Duration(math.Max(0, math.Min(float64(delay)*factor, maxDurationFloat)))
	}
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay
}

// NewFetchBackoff constructs the post-confirmation fetch backoff from the
// SendTx configuration.
func NewFetchBackoff(cfg clientconfig.SendTxConfig) Backoff {
	interval := cfg.FetchMinBackoff
	if interval <= 0 {
		interval = time.Second
	}
	if cfg.FetchBackoffMultiplier > 1 || cfg.FetchBackoffJitter > 0 {
		return &exponentialBackoff{
			initial:    interval,
			multiplier: cfg.FetchBackoffMultiplier,
			max:        cfg.FetchBackoffMaxInterval,
			jitter:     cfg.FetchBackoffJitter,
		}
	}
	return constantBackoff{every: interval}
}

// sleepCtx closes the returned channel after d or once ctx is done,
// whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	if d <= 0 {
		close(ch)
		return ch
	}
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
		close(ch)
	}()
	return ch
}

// wait pauses for d. It returns ctx.Err() if ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	<-sleepCtx(ctx, d)
	return ctx.Err()
}
