package usage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "website_builder"

var (
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "usage",
			Name:      "submissions_total",
			Help:      "Prompt submissions by outcome signal and tier",
		},
		[]string{"signal", "tier"},
	)

	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "usage",
			Name:      "store_errors_total",
			Help:      "Usage store failures by store kind and operation",
		},
		[]string{"store", "op"},
	)
)
