package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cory-johannsen/bowling/internal/config"
)

// ScoreMetrics records the outcome of every scored game.
//
// A nil *ScoreMetrics is valid and records nothing.
type ScoreMetrics struct {
	games    prometheus.Counter
	failures *prometheus.CounterVec
	scores   prometheus.Histogram
	frames   prometheus.Histogram
}

// NewScoreMetrics creates the scoring metric set and registers it with reg.
//
// Precondition: reg must be non-nil.
// Postcondition: Returns registered metrics, or an error if any collector was
// already registered.
func NewScoreMetrics(reg prometheus.Registerer, cfg config.MetricsConfig) (*ScoreMetrics, error) {
	m := &ScoreMetrics{
		games: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "games_scored_total",
			Help:      "Games scored successfully.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "score_failures_total",
			Help:      "Games rejected, by failure kind.",
		}, []string{"kind"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "game_score",
			Help:      "Distribution of game totals.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
		frames: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "game_frames",
			Help:      "Regular frames completed per scored game.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.games, m.failures, m.scores, m.frames} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering score metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveScore records a successfully scored game.
func (m *ScoreMetrics) ObserveScore(score, frames int) {
	if m == nil {
		return
	}
	m.games.Inc()
	m.scores.Observe(float64(score))
	m.frames.Observe(float64(frames))
}

// ObserveFailure records a rejected game under the given failure kind.
func (m *ScoreMetrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}
