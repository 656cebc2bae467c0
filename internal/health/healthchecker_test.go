package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) {}

type fakePinger struct{ err atomic.Value }

func (p *fakePinger) HealthPing(context.Context) error {
	if v := p.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

func TestAggregate_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{name: "a"}
	b := &fakeChecker{name: "b"}
	a.healthy.Store(1)
	b.healthy.Store(1)

	svc := NewAggregate(zerolog.Nop(), a, b)
	assert.False(t, svc.IsHealthy(), "down before the first evaluation")
	go svc.Run(ctx, 10*time.Millisecond)

	assert.Eventually(t, svc.IsHealthy, time.Second, 5*time.Millisecond)

	b.healthy.Store(0)
	assert.Eventually(t, func() bool { return !svc.IsHealthy() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"b"}, svc.Down())

	b.healthy.Store(1)
	assert.Eventually(t, svc.IsHealthy, time.Second, 5*time.Millisecond)
}

func TestStorageChecker_NoPingerIsHealthy(t *testing.T) {
	hc := NewStorageChecker(nil, zerolog.Nop(), 0)
	assert.False(t, hc.IsHealthy())
	hc.Probe(context.Background())
	assert.True(t, hc.IsHealthy())
}

func TestStorageChecker_FollowsPinger(t *testing.T) {
	p := &fakePinger{}
	hc := NewStorageChecker(p, zerolog.Nop(), 50*time.Millisecond)

	hc.Probe(context.Background())
	assert.True(t, hc.IsHealthy())

	p.err.Store(errors.New("connection refused"))
	hc.Probe(context.Background())
	assert.False(t, hc.IsHealthy())
}

func TestAggregate_WithStorageChecker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage := NewStorageChecker(&fakePinger{}, zerolog.Nop(), time.Second)
	go storage.Start(ctx, 10*time.Millisecond)
	svc := NewAggregate(zerolog.Nop(), storage)
	go svc.Run(ctx, 10*time.Millisecond)

	assert.Eventually(t, svc.IsHealthy, time.Second, 5*time.Millisecond)
	assert.Equal(t, "storage", storage.Name())
}
