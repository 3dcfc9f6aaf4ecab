package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "swapkit_sendtx"

// Collector records submission activity. A nil *Collector is valid and
// records nothing.
type Collector struct {
	submissions    *prometheus.CounterVec
	resends        prometheus.Counter
	resendFailures prometheus.Counter
	raceWins       *prometheus.CounterVec
	fetchAttempts  prometheus.Histogram
}

// New registers the submission collectors on reg. A nil registerer yields a
// nil Collector. Collectors already registered on reg are reused.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, nil
	}

	c := &Collector{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Transactions submitted, by final outcome.",
		}, []string{"outcome"}),
		resends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resends_total",
			Help:      "Re-broadcasts of already submitted transactions.",
		}),
		resendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resend_failures_total",
			Help:      "Re-broadcasts rejected by the RPC node.",
		}),
		raceWins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmation_wins_total",
			Help:      "Confirmation races resolved, by winning strategy.",
		}, []string{"strategy"}),
		fetchAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_attempts",
			Help:      "GetTransaction calls needed after confirmation.",
			Buckets:   []float64{1, 2, 3, 4, 5, 8},
		}),
	}

	var err error
	if c.submissions, err = register(reg, c.submissions); err != nil {
		return nil, err
	}
	if c.resends, err = register(reg, c.resends); err != nil {
		return nil, err
	}
	if c.resendFailures, err = register(reg, c.resendFailures); err != nil {
		return nil, err
	}
	if c.raceWins, err = register(reg, c.raceWins); err != nil {
		return nil, err
	}
	if c.fetchAttempts, err = register(reg, c.fetchAttempts); err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, fmt.Errorf("register metrics: %w", err)
	}
	return col, nil
}

// Submission records the final outcome of one SendAndConfirm call.
func (c *Collector) Submission(outcome string) {
	if c == nil {
		return
	}
	c.submissions.WithLabelValues(outcome).Inc()
}

// Resend records one re-broadcast and whether it failed.
func (c *Collector) Resend(failed bool) {
	if c == nil {
		return
	}
	c.resends.Inc()
	if failed {
		c.resendFailures.Inc()
	}
}

// RaceWin records which confirmation strategy resolved first.
func (c *Collector) RaceWin(strategy string) {
	if c == nil {
		return
	}
	c.raceWins.WithLabelValues(strategy).Inc()
}

// FetchAttempts records how many fetches a confirmed transaction needed.
func (c *Collector) FetchAttempts(n int) {
	if c == nil {
		return
	}
	c.fetchAttempts.Observe(float64(n))
}
