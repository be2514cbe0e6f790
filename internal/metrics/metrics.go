package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects broadcast pipeline counters. A fresh instance registers
// against the given registerer, so tests can use an isolated registry.
type Metrics struct {
	BroadcastsTotal prometheus.Counter
	MessagesSent    prometheus.Counter
	MessagesFailed  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BroadcastsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rakta_broadcasts_total",
			Help: "Total number of segment broadcast invocations",
		}),
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rakta_sms_sent_total",
			Help: "Total number of SMS messages accepted by the gateway",
		}),
		MessagesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rakta_sms_failed_total",
			Help: "Total number of SMS sends rejected or failed in transport",
		}),
	}
	reg.MustRegister(m.BroadcastsTotal, m.MessagesSent, m.MessagesFailed)
	return m
}
