package acceptor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Scheduler is responsible for scheduling suite runs.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error
	RegisterCallback(func() error)
	WaitForShutdown(ctx context.Context) error
	Stopped() bool
}

// DefaultScheduler implements the Scheduler interface. In run-once mode it
// invokes the callback a single time; otherwise it keeps running at the
// configured interval until stopped.
type DefaultScheduler struct {
	interval time.Duration
	runOnce  bool
	logger   *zap.Logger
	callback func() error

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewDefaultScheduler creates a new DefaultScheduler.
func NewDefaultScheduler(interval time.Duration, runOnce bool, logger *zap.Logger) *DefaultScheduler {
	return &DefaultScheduler{
		interval: interval,
		runOnce:  runOnce,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// RegisterCallback registers the callback to be called when the suite should run.
func (s *DefaultScheduler) RegisterCallback(callback func() error) {
	s.callback = callback
}

// Start starts the scheduler.
func (s *DefaultScheduler) Start(ctx context.Context) error {
	if s.callback == nil {
		return errors.New("callback must be registered before starting scheduler")
	}

	s.done = make(chan struct{})
	s.running.Store(true)

	if s.runOnce {
		s.logger.Info("starting scheduler in run-once mode")
		return s.callback()
	}

	s.logger.Info("starting scheduler in continuous mode", zap.Duration("interval", s.interval))

	// Run immediately on startup
	err := s.callback()
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-time.After(s.interval):
				if !s.running.Load() {
					s.logger.Debug("scheduler stopped, exiting periodic runner")
					return
				}
				s.logger.Info("running scheduled suite")
				if err := s.callback(); err != nil {
					s.logger.Error("scheduled suite run failed", zap.Error(err))
				}

			case <-s.done:
				s.logger.Debug("done signal received, stopping periodic runner")
				return

			case <-ctx.Done():
				s.logger.Debug("context canceled, stopping periodic runner")
				s.running.Store(false)
				return
			}
		}
	}()

	return nil
}

// Stop stops the scheduler.
func (s *DefaultScheduler) Stop() error {
	if !s.running.Load() {
		s.logger.Debug("scheduler already stopped, nothing to do")
		return nil
	}

	s.running.Store(false)
	close(s.done)
	return nil
}

// Stopped returns true if the scheduler is stopped.
func (s *DefaultScheduler) Stopped() bool {
	return !s.running.Load()
}

// WaitForShutdown blocks until all goroutines have terminated.
func (s *DefaultScheduler) WaitForShutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.logger.Warn("timed out waiting for scheduler goroutines", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}
