// Package metrics holds the Prometheus collectors for the simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a set of collectors bound to one registry, so tests can use a
// fresh registry instead of the global one.
type Metrics struct {
	Registry *prometheus.Registry

	CandlesGenerated *prometheus.CounterVec
	Ticks            *prometheus.CounterVec
	Fills            *prometheus.CounterVec
	GenerateErrors   prometheus.Counter
	RequestLatency   *prometheus.HistogramVec
	Subscribers      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		CandlesGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marketsim",
				Subsystem: "generator",
				Name:      "candles_total",
				Help:      "Candles produced by series generation",
			},
			[]string{"interval"},
		),
		Ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marketsim",
				Subsystem: "feed",
				Name:      "ticks_total",
				Help:      "Live ticks appended to feeds",
			},
			[]string{"symbol", "interval"},
		),
		Fills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "marketsim",
				Subsystem: "blotter",
				Name:      "fills_total",
				Help:      "Paper fills by side",
			},
			[]string{"side"},
		),
		GenerateErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "marketsim",
				Subsystem: "generator",
				Name:      "errors_total",
				Help:      "Failed series generations",
			},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "marketsim",
				Subsystem: "api",
				Name:      "latency_seconds",
				Help:      "Latency of API endpoints",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		Subscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "marketsim",
				Subsystem: "feed",
				Name:      "subscribers",
				Help:      "Open websocket subscriptions",
			},
		),
	}
	m.Registry.MustRegister(
		m.CandlesGenerated,
		m.Ticks,
		m.Fills,
		m.GenerateErrors,
		m.RequestLatency,
		m.Subscribers,
		prometheus.NewGoCollector(),
	)
	return m
}
