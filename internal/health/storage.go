package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// StorageChecker probes the document storage backend. Backends without a
// HealthPinger (in-memory, or no backend at all) are always healthy.
type StorageChecker struct {
	target       any
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewStorageChecker creates a checker for target, which may be nil.
func NewStorageChecker(target any, log zerolog.Logger, probeTimeout time.Duration) *StorageChecker {
	hc := &StorageChecker{target: target, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0) // unhealthy until the first probe
	return hc
}

func (hc *StorageChecker) Name() string    { return "storage" }
func (hc *StorageChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

// Probe runs one check and updates the flag.
func (hc *StorageChecker) Probe(ctx context.Context) {
	to := hc.probeTimeout
	if to <= 0 {
		to = 2 * time.Second
	}
	checkCtx, cancel := context.WithTimeout(ctx, to)
	defer cancel()

	if p, ok := hc.target.(HealthPinger); ok {
		if err := p.HealthPing(checkCtx); err != nil {
			hc.healthy.Store(0)
			hc.log.Error().Stack().Str("checker", hc.Name()).Err(err).Msg("storage health check failed")
			return
		}
	}
	hc.healthy.Store(1)
}

func (hc *StorageChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hc.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hc.Probe(ctx)
		}
	}
}
