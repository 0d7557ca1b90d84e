package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsCallsOnLoop(t *testing.T) {
	d := newLoopDispatcher()
	assert.False(t, d.OnOwnerThread())

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		d.run(<-d.calls)
	}()

	ran := false
	require.NoError(t, d.Invoke(context.Background(), func() { ran = true }))
	assert.True(t, ran)
	<-loopDone
}

func TestDispatcherAfterStop(t *testing.T) {
	d := newLoopDispatcher()
	d.stop()
	d.stop()

	assert.True(t, d.OnOwnerThread())
	err := d.Invoke(context.Background(), func() { t.Fatal("must not run") })
	assert.ErrorIs(t, err, ErrLoopStopped)
}

func TestDispatcherStopReleasesWaitingCaller(t *testing.T) {
	d := newLoopDispatcher()
	errCh := make(chan error, 1)
	go func() {
		errCh <- d.Invoke(context.Background(), func() {})
	}()
	time.Sleep(10 * time.Millisecond)
	d.stop()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrLoopStopped)
	case <-time.After(5 * time.Second):
		t.Fatal("Invoke did not return after stop")
	}
}

func TestDispatcherHonorsContext(t *testing.T) {
	d := newLoopDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Invoke(ctx, func() { t.Fatal("must not run") })
	assert.ErrorIs(t, err, context.Canceled)
}
