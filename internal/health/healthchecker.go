package health

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is a single probed component of the itfit service.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// Aggregate derives the service flag behind /api/health from its
// components. The service is down until the first evaluation and whenever
// any component reports unhealthy.
type Aggregate struct {
	components []HealthChecker
	log        zerolog.Logger

	mu        sync.RWMutex
	evaluated bool
	down      []string
}

// NewAggregate watches components. They are started by the caller.
func NewAggregate(log zerolog.Logger, components ...HealthChecker) *Aggregate {
	return &Aggregate{components: components, log: log}
}

func (a *Aggregate) IsHealthy() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.evaluated && len(a.down) == 0
}

// Down names the components that failed the last evaluation.
func (a *Aggregate) Down() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.down)
}

// Run evaluates immediately and then every interval until ctx is done.
func (a *Aggregate) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.evaluate()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.evaluate()
		}
	}
}

func (a *Aggregate) evaluate() {
	var down []string
	for _, c := range a.components {
		if !c.IsHealthy() {
			down = append(down, c.Name())
		}
	}

	a.mu.Lock()
	wasHealthy := a.evaluated && len(a.down) == 0
	first := !a.evaluated
	changed := first || !slices.Equal(a.down, down)
	a.evaluated = true
	a.down = down
	a.mu.Unlock()

	if !changed {
		return
	}
	switch {
	case len(down) == 0:
		a.log.Info().Msg("itfit service healthy")
	case wasHealthy || first:
		a.log.Error().Strs("down", down).Msg("itfit service unhealthy")
	default:
		a.log.Warn().Strs("down", down).Msg("unhealthy components changed")
	}
}
