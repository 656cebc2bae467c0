package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "itfit_client",
		Name:      "requests_total",
		Help:      "API requests issued by the SDK by method and outcome.",
	},
	[]string{"method", "outcome"},
)
