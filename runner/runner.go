// Package runner invokes the browser-automation framework once per category
// and aggregates the outcomes into a RunSummary. Categories run sequentially;
// a failing category is recorded and never aborts the rest of the queue.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/helioswap/qa-acceptor/metrics"
	"github.com/helioswap/qa-acceptor/types"
)

// DefaultCategoryDelay is the pause between category invocations, giving the
// previous browser session time to release its resources.
const DefaultCategoryDelay = 3 * time.Second

// SuiteRunner executes QA categories and aggregates their results.
type SuiteRunner interface {
	RunCategories(ctx context.Context, categories []types.Category) (*types.RunSummary, error)
	RunCategory(ctx context.Context, category types.Category) types.CategoryResult
}

// Config holds configuration for creating a new runner.
type Config struct {
	Log         *zap.Logger
	WorkDir     string // Directory the framework is invoked from
	RunnerBin   string // Binary that wraps the framework, e.g. "npx"
	TargetURL   string // Base URL of the UI under test
	Environment string // Environment label recorded on the summary
	Delay       time.Duration
}

type runner struct {
	log         *zap.Logger
	workDir     string
	runnerBin   string
	targetURL   string
	environment string
	delay       time.Duration

	// newCommand is swapped out in tests to avoid spawning the real framework.
	newCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewSuiteRunner creates a new runner instance.
func NewSuiteRunner(cfg Config) (SuiteRunner, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("work directory is required")
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.RunnerBin == "" {
		cfg.RunnerBin = "npx"
	}
	if cfg.Delay == 0 {
		cfg.Delay = DefaultCategoryDelay
	}
	if cfg.Environment == "" {
		cfg.Environment = "staging"
	}

	return &runner{
		log:         cfg.Log,
		workDir:     cfg.WorkDir,
		runnerBin:   cfg.RunnerBin,
		targetURL:   cfg.TargetURL,
		environment: cfg.Environment,
		delay:       cfg.Delay,
		newCommand:  exec.CommandContext,
	}, nil
}

// RunCategories implements the SuiteRunner interface. It invokes each
// category in order, pausing between invocations, and finalizes the summary
// when the queue is exhausted or the context is canceled. Cancellation drops
// the remaining queue; results already collected are kept.
func (r *runner) RunCategories(ctx context.Context, categories []types.Category) (*types.RunSummary, error) {
	runID := uuid.New().String()
	start := time.Now()
	summary := types.NewRunSummary(runID, r.environment, start)

	r.log.Info("starting suite run",
		zap.String("run_id", runID),
		zap.String("environment", r.environment),
		zap.Int("categories", len(categories)))

	for i, category := range categories {
		if ctx.Err() != nil {
			r.log.Warn("run canceled, dropping remaining categories",
				zap.String("run_id", runID),
				zap.Int("remaining", len(categories)-i))
			break
		}

		result := r.RunCategory(ctx, category)
		summary.Append(result)
		metrics.RecordCategory(r.environment, runID, category.Name, result.Success)

		if i < len(categories)-1 {
			r.pause(ctx)
		}
	}

	summary.Finalize(time.Now())
	r.log.Info("suite run finished",
		zap.String("run_id", runID),
		zap.String("classification", string(summary.Classification)),
		zap.Int("passed", summary.Stats.Passed),
		zap.Int("failed", summary.Stats.Failed))
	return summary, nil
}

// RunCategory implements the SuiteRunner interface. All invocation failures
// (non-zero exit, timeout, spawn error, panic) are converted into a failing
// CategoryResult; nothing escapes as an error.
func (r *runner) RunCategory(ctx context.Context, category types.Category) (result types.CategoryResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("panic while invoking category",
				zap.String("category", category.Name),
				zap.Any("panic", rec))
			result = types.CategoryResult{
				Name:     category.Name,
				Critical: category.Critical,
				Error:    fmt.Sprintf("runtime fault: %v", rec),
			}
		}
	}()

	timeout := category.Timeout
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := r.newCommand(ctx, r.runnerBin, category.Args()...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(), "QA_TARGET_URL="+r.targetURL)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Info("invoking category",
		zap.String("category", category.Name),
		zap.String("tag", category.Tag),
		zap.Bool("critical", category.Critical),
		zap.Duration("timeout", timeout))
	r.log.Debug("category command",
		zap.String("command", cmd.String()),
		zap.String("dir", cmd.Dir))

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result = types.CategoryResult{
		Name:     category.Name,
		Critical: category.Critical,
		Duration: duration,
		Success:  err == nil,
		Output:   cleanOutput(stdout.Bytes()),
	}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		result.Success = false
		result.Error = fmt.Sprintf("category timed out after %v", timeout)
	case err != nil:
		msg := err.Error()
		if stderr.Len() > 0 {
			msg = fmt.Sprintf("%s\nstderr: %s", msg, cleanOutput(stderr.Bytes()))
		}
		result.Error = msg
	}

	r.log.Info("category finished",
		zap.String("category", category.Name),
		zap.Bool("success", result.Success),
		zap.Duration("duration", duration),
		zap.String("error", result.Error))
	return result
}

// pause waits the configured inter-category delay, returning early on
// cancellation.
func (r *runner) pause(ctx context.Context) {
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
	}
}

const maxOutputBytes = 64 * 1024

// cleanOutput strips ANSI color codes the framework's line reporter emits and
// caps the retained output so the artifact stays reviewable.
func cleanOutput(b []byte) string {
	if len(b) > maxOutputBytes {
		b = b[len(b)-maxOutputBytes:]
	}
	return stripansi.Strip(string(bytes.TrimSpace(b)))
}
