package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Read sources and write results used as metric labels.
const (
	sourceStored   = "stored"
	sourceMigrated = "migrated"
	sourceDefault  = "default"

	resultOK          = "ok"
	resultError       = "error"
	resultUnavailable = "unavailable"
)

var (
	readsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itfit",
			Subsystem: "store",
			Name:      "reads_total",
			Help:      "Document reads by where the returned document came from.",
		},
		[]string{"source"},
	)

	writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itfit",
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Document writes by outcome.",
		},
		[]string{"result"},
	)

	importsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "itfit",
			Subsystem: "store",
			Name:      "imports_rejected_total",
			Help:      "Imported snapshots rejected by validation.",
		},
	)
)
