package maintenance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHousekeeper struct {
	ticks    atomic.Int32
	tickFunc func(ctx context.Context, now time.Time) error
}

func (f *fakeHousekeeper) Tick(ctx context.Context, now time.Time) error {
	f.ticks.Add(1)
	if f.tickFunc != nil {
		return f.tickFunc(ctx, now)
	}
	return nil
}

func TestNewRunner_RequiresService(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
}

func TestNewRunner_DefaultsInterval(t *testing.T) {
	r, err := NewRunner(RunnerOptions{Service: &fakeHousekeeper{}})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, r.interval)
}

func TestRunner_TicksUntilCancelled(t *testing.T) {
	hk := &fakeHousekeeper{}
	r, err := NewRunner(RunnerOptions{Service: hk, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return hk.ticks.Load() >= 3
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

func TestRunner_KeepsRunningAfterTickError(t *testing.T) {
	hk := &fakeHousekeeper{
		tickFunc: func(_ context.Context, _ time.Time) error {
			return errors.New("database unavailable")
		},
	}
	r, err := NewRunner(RunnerOptions{Service: hk, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return hk.ticks.Load() >= 2
	}, time.Second, time.Millisecond)
}

func TestRunner_DeadlineReturnsError(t *testing.T) {
	hk := &fakeHousekeeper{}
	r, err := NewRunner(RunnerOptions{Service: hk, Interval: time.Hour})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	runErr := r.Run(ctx)
	assert.ErrorIs(t, runErr, context.DeadlineExceeded)
}
