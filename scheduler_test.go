package acceptor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultScheduler_RunOnce(t *testing.T) {
	callCount := 0
	scheduler := NewDefaultScheduler(100*time.Millisecond, true, zap.NewNop())
	scheduler.RegisterCallback(func() error {
		callCount++
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := scheduler.Start(ctx)
	require.NoError(t, err)

	// In run-once mode the callback runs exactly once, immediately.
	assert.Equal(t, 1, callCount)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, callCount)
}

func TestDefaultScheduler_RunOncePropagatesError(t *testing.T) {
	scheduler := NewDefaultScheduler(time.Second, true, zap.NewNop())
	scheduler.RegisterCallback(func() error {
		return errors.New("suite blew up")
	})

	err := scheduler.Start(context.Background())
	assert.Error(t, err)
}

func TestDefaultScheduler_Periodic(t *testing.T) {
	callChan := make(chan struct{}, 10)
	scheduler := NewDefaultScheduler(10*time.Millisecond, false, zap.NewNop())
	scheduler.RegisterCallback(func() error {
		callChan <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, scheduler.Start(ctx))

	// First call is immediate; wait for at least two periodic ones.
	for i := 0; i < 3; i++ {
		select {
		case <-callChan:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for callback %d", i+1)
		}
	}

	require.NoError(t, scheduler.Stop())
	assert.True(t, scheduler.Stopped())

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	assert.NoError(t, scheduler.WaitForShutdown(waitCtx))
}

func TestDefaultScheduler_RequiresCallback(t *testing.T) {
	scheduler := NewDefaultScheduler(time.Second, true, zap.NewNop())
	err := scheduler.Start(context.Background())
	assert.Error(t, err)
}

func TestDefaultScheduler_StopTwice(t *testing.T) {
	scheduler := NewDefaultScheduler(time.Hour, false, zap.NewNop())
	scheduler.RegisterCallback(func() error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, scheduler.Start(ctx))

	require.NoError(t, scheduler.Stop())
	require.NoError(t, scheduler.Stop())
}
