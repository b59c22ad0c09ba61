// Package metrics exposes quiz and fetch counters on a private prometheus
// registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/levelquiz/internal/quiz"
)

// Fetch outcomes used as the result label of levelquiz_loads_total.
const (
	ResultOK        = "ok"
	ResultNetwork   = "network"
	ResultMalformed = "malformed"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	loads           *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	answers         *prometheus.CounterVec
	levelsCompleted prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "levelquiz_loads_total",
				Help: "Question sequence fetches by result",
			},
			[]string{"result"},
		),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "levelquiz_fetch_duration_seconds",
			Help:    "Duration of question sequence fetches",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		}),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "levelquiz_answers_total",
				Help: "Submitted answers by correctness",
			},
			[]string{"correct"},
		),
		levelsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "levelquiz_levels_completed_total",
			Help: "Sessions that reached the summary",
		}),
	}
	m.registry.MustRegister(m.loads, m.fetchDuration, m.answers, m.levelsCompleted)
	return m
}

// Registry returns the private registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one fetch with its outcome label.
func (m *Metrics) ObserveFetch(d time.Duration, result string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// Observer returns an engine observer that counts submitted answers and
// completed levels. It keys off state changes, so re-selecting an answer or
// repeated snapshots in the same state are not double counted.
func (m *Metrics) Observer() func(quiz.Snapshot) {
	last := quiz.StateLoading
	return func(s quiz.Snapshot) {
		if m == nil {
			return
		}
		if s.State != last {
			switch s.State {
			case quiz.StateAnswerRevealed:
				m.answers.WithLabelValues(strconv.FormatBool(s.LastCorrect)).Inc()
			case quiz.StateCompleted:
				m.levelsCompleted.Inc()
			}
		}
		last = s.State
	}
}

// Handler routes /metrics and /healthz.
func (m *Metrics) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return r
}

// Serve listens on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
