package pets

import "github.com/prometheus/client_golang/prometheus"

const (
	kindGroup = "group"
	kindTrait = "trait"
)

// Metrics del reconciler. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	resolutions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pets",
			Subsystem: "reconciler",
			Name:      "resolutions_total",
			Help:      "Group/trait resolutions by kind and outcome (matched or created).",
		}, []string{"kind", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.resolutions)
	}
	return m
}

func (m *Metrics) observe(kind string, created bool) {
	if m == nil {
		return
	}
	outcome := "matched"
	if created {
		outcome = "created"
	}
	m.resolutions.WithLabelValues(kind, outcome).Inc()
}
