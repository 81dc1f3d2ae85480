// Package telemetry exports simulation progress and orbit diagnostics as
// Prometheus metrics.
package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/plus3/orbitsim/orbit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

const namespace = "orbitsim"

// Recorder holds the collectors updated by a driver after each tick.
type Recorder struct {
	ticks        prometheus.Counter
	failures     prometheus.Counter
	stepDuration prometheus.Histogram
	radius       *prometheus.GaugeVec
	energy       *prometheus.GaugeVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of completed simulation ticks.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_ticks_total",
			Help:      "Number of ticks rejected because a body reached a degenerate or non-finite state.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall-clock time spent advancing one tick.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		radius: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orbit_radius",
			Help:      "Distance between a body and the attractor.",
		}, []string{"body", "scheme"}),
		energy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "specific_orbital_energy",
			Help:      "Orbital energy per unit mass of a body, v²/2 - GM/r.",
		}, []string{"body", "scheme"}),
	}
	reg.MustRegister(r.ticks, r.failures, r.stepDuration, r.radius, r.energy)
	return r
}

// ObserveStep records one completed tick.
func (r *Recorder) ObserveStep(d time.Duration) {
	r.ticks.Inc()
	r.stepDuration.Observe(d.Seconds())
}

// ObserveDiagnostics updates the per-body gauges.
func (r *Recorder) ObserveDiagnostics(diags []orbit.BodyDiagnostics) {
	for _, d := range diags {
		scheme := d.Scheme.String()
		r.radius.WithLabelValues(d.Name, scheme).Set(d.Radius)
		r.energy.WithLabelValues(d.Name, scheme).Set(d.Energy)
	}
}

// Failure records a rejected tick.
func (r *Recorder) Failure() {
	r.failures.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Listen serves /metrics on addr in the background. The returned server can be
// shut down by the caller.
func Listen(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		klog.Infof("serving metrics on %s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("metrics server: %v", err)
		}
	}()
	return server
}
