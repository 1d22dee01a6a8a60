package bridge

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeTimeout = "timeout"
	outcomeClosed  = "channel_closed"
)

type metrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glimpse",
			Subsystem: "bridge",
			Name:      "commands_total",
			Help:      "Commands submitted to the evaluation loop, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "glimpse",
			Subsystem: "bridge",
			Name:      "command_duration_seconds",
			Help:      "Time from enqueue to resolution.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "glimpse",
			Subsystem: "bridge",
			Name:      "commands_in_flight",
			Help:      "Commands submitted but not yet resolved or abandoned.",
		}),
	}
}

func (m *metrics) count(kind domain.RequestKind, outcome string) {
	m.commands.WithLabelValues(string(kind), outcome).Inc()
}

func (m *metrics) observe(kind domain.RequestKind, res domain.Response, elapsed time.Duration) {
	outcome := outcomeSuccess
	if !res.OK {
		outcome = outcomeFailure
	}
	m.commands.WithLabelValues(string(kind), outcome).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}
