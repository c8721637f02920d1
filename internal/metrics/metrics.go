package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for webhook handling
type Metrics struct {
	WebhooksReceived *prometheus.CounterVec
	Outcomes         *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WebhooksReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vtex_webhooks_received_total",
				Help: "Total number of VTEX webhooks received, by normalized status",
			},
			[]string{"status"},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notification_outcomes_total",
				Help: "Terminal outcome of each handled webhook",
			},
			[]string{"outcome"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(m.WebhooksReceived, m.Outcomes, m.HTTPRequests, m.HTTPDuration)
	return m
}

// ObserveWebhook counts a received webhook. Safe on a nil *Metrics.
func (m *Metrics) ObserveWebhook(status string) {
	if m == nil {
		return
	}
	m.WebhooksReceived.WithLabelValues(status).Inc()
}

// ObserveOutcome counts a terminal outcome. Safe on a nil *Metrics.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
}
