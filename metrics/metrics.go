package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RTradeLtd/Dispatch/action"
	"github.com/RTradeLtd/Dispatch/resolver"
	"github.com/RTradeLtd/Dispatch/route"
)

const namespace = "dispatch"

// Collector records routing and action execution metrics. It implements
// action.Diagnostics and resolver.Recorder.
type Collector struct {
	reg *prometheus.Registry

	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	actions  *prometheus.CounterVec
}

// New creates a collector backed by its own registry
func New() *Collector {
	var c = &Collector{
		reg: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_outcomes_total",
			Help:      "Routed requests by outcome and whether dynamic resolution was used.",
		}, []string{"outcome", "dynamic"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_duration_seconds",
			Help:      "Time spent routing and executing requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "actions_in_flight",
			Help:      "Actions currently executing.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Executed actions by app and controller.",
		}, []string{"app", "controller"}),
	}
	c.reg.MustRegister(
		c.outcomes,
		c.duration,
		c.inFlight,
		c.actions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry metrics are recorded in
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler serves the collected metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Record implements resolver.Recorder
func (c *Collector) Record(res resolver.Result, took time.Duration) {
	var outcome = res.Outcome.String()
	c.outcomes.WithLabelValues(outcome, strconv.FormatBool(res.Dynamic)).Inc()
	c.duration.WithLabelValues(outcome).Observe(took.Seconds())
}

// BeforeAction implements action.Diagnostics
func (c *Collector) BeforeAction(d *action.Descriptor, _ *http.Request, _ route.Values) {
	c.inFlight.Inc()
	c.actions.WithLabelValues(d.App, d.Controller).Inc()
}

// AfterAction implements action.Diagnostics
func (c *Collector) AfterAction(*action.Descriptor, *http.Request, route.Values) {
	c.inFlight.Dec()
}
