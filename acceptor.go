// Package acceptor orchestrates the Helioswap browser QA suite: it invokes
// the automation framework once per category, aggregates the results into a
// run summary, persists the JSON artifact and reports to console and metrics.
package acceptor

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/helioswap/qa-acceptor/metrics"
	"github.com/helioswap/qa-acceptor/prereq"
	"github.com/helioswap/qa-acceptor/registry"
	"github.com/helioswap/qa-acceptor/reporting"
	"github.com/helioswap/qa-acceptor/runner"
	"github.com/helioswap/qa-acceptor/types"
)

// prereqChecker is satisfied by prereq.Checker.
type prereqChecker interface {
	Check(ctx context.Context) error
}

// Service wires the registry, prerequisite checker and suite runner together
// for one or more runs.
type Service struct {
	config   *Config
	version  string
	registry *registry.Registry
	runner   runner.SuiteRunner
	checker  prereqChecker
	result   *types.RunSummary

	running atomic.Bool
}

// New creates the orchestration service.
func New(config *Config, version string) (*Service, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("creating service",
		zap.String("version", version),
		zap.String("environment", config.Environment),
		zap.String("target", config.TargetURL))

	reg, err := registry.NewRegistry(registry.Config{
		Log:                config.Log,
		CategoryConfigFile: config.CategoryConfigFile,
		DefaultTimeout:     config.CategoryTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating registry")
	}

	suiteRunner, err := runner.NewSuiteRunner(runner.Config{
		Log:         config.Log,
		WorkDir:     config.WorkDir,
		RunnerBin:   config.RunnerBin,
		TargetURL:   config.TargetURL,
		Environment: config.Environment,
		Delay:       config.CategoryDelay,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating suite runner")
	}

	checker := prereq.NewChecker(prereq.Config{
		Log:       config.Log,
		RunnerBin: config.RunnerBin,
		TargetURL: config.TargetURL,
	})

	return &Service{
		config:   config,
		version:  version,
		registry: reg,
		runner:   suiteRunner,
		checker:  checker,
	}, nil
}

// CheckPrereqs verifies the automation tool and the target are reachable.
// A failure is a RuntimeError: nothing may run without prerequisites.
func (s *Service) CheckPrereqs(ctx context.Context) error {
	if err := s.checker.Check(ctx); err != nil {
		metrics.RecordErrorDetails("prerequisite check failed", err)
		return NewRuntimeError(errors.Wrap(err, "prerequisite check failed"))
	}
	s.config.Log.Info("prerequisites satisfied",
		zap.String("runner", s.config.RunnerBin),
		zap.String("target", s.config.TargetURL))
	return nil
}

// Run executes one invocation of the suite: a single category when
// --suite was given, the quick subset under --quick, otherwise the full
// catalog. The returned error carries the exit classification.
func (s *Service) Run(ctx context.Context) error {
	s.running.Store(true)
	defer s.running.Store(false)

	if err := s.CheckPrereqs(ctx); err != nil {
		return err
	}

	if s.config.TargetSuite != "" {
		return s.runSingle(ctx, s.config.TargetSuite)
	}

	categories := s.registry.Categories()
	if s.config.Quick {
		categories = s.registry.QuickCategories()
		if len(categories) == 0 {
			return NewRuntimeError(errors.New("no quick categories configured"))
		}
	}

	summary, err := s.runner.RunCategories(ctx, categories)
	if err != nil {
		return NewRuntimeError(errors.Wrap(err, "running categories"))
	}
	s.result = summary

	if err := reporting.WriteJSONSummary(s.config.ArtifactPath, summary); err != nil {
		metrics.RecordErrorDetails("artifact write failed", err)
		return NewRuntimeError(errors.Wrap(err, "writing summary artifact"))
	}
	s.config.Log.Info("summary artifact written", zap.String("path", s.config.ArtifactPath))

	reporting.PrintSummaryTable(os.Stdout, summary)
	metrics.RecordRun(s.config.Environment, summary)

	return s.exitErrorFor(summary)
}

// runSingle invokes exactly one category. No aggregate artifact is written.
func (s *Service) runSingle(ctx context.Context, name string) error {
	category, ok := s.registry.Category(name)
	if !ok {
		return NewRuntimeError(errors.Errorf("unknown category %q", name))
	}

	result := s.runner.RunCategory(ctx, category)
	metrics.RecordCategory(s.config.Environment, "single", category.Name, result.Success)
	reporting.PrintCategoryResult(os.Stdout, result)

	if result.Success {
		return nil
	}
	if result.Critical {
		return NewCriticalFailureError(fmt.Sprintf("critical category %s failed", result.Name))
	}
	if s.config.FailOnNonCritical {
		return NewCriticalFailureError(fmt.Sprintf("category %s failed", result.Name))
	}
	s.config.Log.Warn("non-critical category failed", zap.String("category", result.Name))
	return nil
}

// exitErrorFor maps a finalized summary to the process exit classification.
// By convention non-critical failures exit 0 unless --fail-on-noncritical.
func (s *Service) exitErrorFor(summary *types.RunSummary) error {
	switch summary.Classification {
	case types.ClassCriticalFailure:
		return NewCriticalFailureError(fmt.Sprintf(
			"%d critical categories failed", summary.Stats.CriticalFailed))
	case types.ClassNonCriticalFailure:
		if s.config.FailOnNonCritical {
			return NewCriticalFailureError(fmt.Sprintf(
				"%d non-critical categories failed", summary.Stats.Failed))
		}
		s.config.Log.Warn("non-critical categories failed",
			zap.Int("failed", summary.Stats.Failed))
		return nil
	default:
		return nil
	}
}

// Result returns the summary of the last completed run.
func (s *Service) Result() *types.RunSummary {
	return s.result
}

// Running reports whether a run is in progress.
func (s *Service) Running() bool {
	return s.running.Load()
}
