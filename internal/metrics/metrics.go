// Package metrics exports Prometheus counters describing 2048 play: moves,
// merges, animation rounds that had to be forced, faults and outcomes.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/merge-arcade/internal/games/t2048/engine"
)

const namespace = "arcade"

// Collector holds the metric vectors shared by every session of a process.
// All label sets start with the game variant.
type Collector struct {
	moves    *prometheus.CounterVec
	merges   *prometheus.CounterVec
	points   *prometheus.CounterVec
	phases   *prometheus.CounterVec
	forced   *prometheus.CounterVec
	missing  *prometheus.CounterVec
	faults   *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	sessions prometheus.Gauge
}

// New creates the collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Moves accepted, by direction.",
		}, []string{"variant", "direction", "changed"}),
		merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Pairs of blocks merged.",
		}, []string{"variant"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_points_total",
			Help:      "Points scored by merges.",
		}, []string{"variant"}),
		phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_entered_total",
			Help:      "Phase changes observed by sessions, by destination phase.",
		}, []string{"variant", "phase"}),
		forced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_forced_total",
			Help:      "Animation rounds completed by the timeout instead of by their animations.",
		}, []string{"variant", "phase"}),
		missing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_missing_total",
			Help:      "Animation completions that never arrived before a round was forced.",
		}, []string{"variant"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faults_total",
			Help:      "Events rejected by the engine, by kind.",
		}, []string{"variant", "kind"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached a terminal phase, by outcome.",
		}, []string{"variant", "outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Arcade sessions currently connected.",
		}),
	}

	reg.MustRegister(c.moves, c.merges, c.points, c.phases, c.forced, c.missing, c.faults, c.outcomes, c.sessions)
	return c
}

// Observer returns an engine observer recording into the collector under
// the given variant label.
func (c *Collector) Observer(variant string) engine.Observer {
	return &observer{c: c, variant: variant}
}

// SessionStarted and SessionEnded track connected sessions.
func (c *Collector) SessionStarted() { c.sessions.Inc() }
func (c *Collector) SessionEnded()   { c.sessions.Dec() }

// FaultKind names the class of an engine error for the faults label.
func FaultKind(err error) string {
	switch {
	case errors.Is(err, engine.ErrStaleRound):
		return "stale_round"
	case errors.Is(err, engine.ErrProtocol):
		return "protocol"
	case errors.Is(err, engine.ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, engine.ErrRoundTimeout):
		return "round_timeout"
	default:
		return "other"
	}
}

type observer struct {
	c       *Collector
	variant string
}

func (o *observer) PhaseChanged(_, to engine.Phase) {
	o.c.phases.WithLabelValues(o.variant, string(to)).Inc()
	switch to {
	case engine.PhaseWon:
		o.c.outcomes.WithLabelValues(o.variant, "won").Inc()
	case engine.PhaseGameOver:
		o.c.outcomes.WithLabelValues(o.variant, "lost").Inc()
	}
}

func (o *observer) Moved(res engine.MoveResult) {
	changed := "false"
	if res.Changed {
		changed = "true"
	}
	o.c.moves.WithLabelValues(o.variant, res.Direction.String(), changed).Inc()
	if res.Merges > 0 {
		o.c.merges.WithLabelValues(o.variant).Add(float64(res.Merges))
		o.c.points.WithLabelValues(o.variant).Add(float64(res.Score))
	}
}

func (o *observer) RoundForced(phase engine.Phase, missing int) {
	o.c.forced.WithLabelValues(o.variant, string(phase)).Inc()
	o.c.missing.WithLabelValues(o.variant).Add(float64(missing))
}

func (o *observer) Fault(err error) {
	o.c.faults.WithLabelValues(o.variant, FaultKind(err)).Inc()
}

// Handler returns the HTTP handler serving g at /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Serve exposes /metrics for g on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
