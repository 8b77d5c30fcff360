// Package telemetry exports game activity as prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blockfall"

// Metrics counts commands, landings, cleared lines and finished games. It implements
// game.Observer.
type Metrics struct {
	commands  *prometheus.CounterVec
	landings  prometheus.Counter
	lines     prometheus.Counter
	gamesOver prometheus.Counter
	spawns    *prometheus.CounterVec
	occupied  prometheus.Gauge
}

// New registers the game metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands applied to a session, by command and whether they were accepted.",
		}, []string{"command", "accepted"}),
		landings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "landings_total",
			Help:      "Pieces merged into the grid.",
		}),
		lines: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Full rows removed after a landing.",
		}),
		gamesOver: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_over_total",
			Help:      "Sessions that ended because a new piece could not spawn.",
		}),
		spawns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spawns_total",
			Help:      "Pieces spawned after a landing, by kind.",
		}, []string{"kind"}),
		occupied: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grid_occupied_cells",
			Help:      "Landed cells in the grid after the most recent landing.",
		}),
	}
}

func (m *Metrics) Observe(session game.Session, outcome game.Outcome) {
	m.commands.WithLabelValues(outcome.Command.String(), strconv.FormatBool(outcome.Accepted)).Inc()
	if !outcome.Landed {
		return
	}

	m.landings.Inc()
	m.lines.Add(float64(outcome.LinesCleared))
	m.occupied.Set(float64(session.Grid().Occupied()))
	if outcome.GameOver {
		m.gamesOver.Inc()
		return
	}
	m.spawns.WithLabelValues(outcome.Spawned.String()).Inc()
}

// Serve exposes the metrics gathered by g on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("metrics endpoint stopped")
		return nil
	}
}
