package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	acceptor "github.com/helioswap/qa-acceptor"
	"github.com/helioswap/qa-acceptor/exitcodes"
	"github.com/helioswap/qa-acceptor/flags"
	"github.com/helioswap/qa-acceptor/service"
)

var (
	Version   = "v1.2.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "qa-acceptor"
	app.Usage = "Helioswap browser QA suite runner"
	app.Description = "qa-acceptor drives the tag-filtered Playwright categories against the Helioswap UI, aggregates pass/fail results and writes the JSON run summary"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if acceptor.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if acceptor.IsCriticalFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.CriticalFailure))
			} else {
				// Unclassified faults still must not exit 0.
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.CriticalFailure))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		// ExitErrHandler normally terminates first; this is the fallback.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(cliCtx *cli.Context) error {
	logger, err := newLogger(cliCtx.String(flags.LogLevel.Name))
	if err != nil {
		return acceptor.NewRuntimeError(fmt.Errorf("failed to create logger: %w", err))
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := acceptor.NewConfig(cliCtx, logger)
	if err != nil {
		return acceptor.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	svc, err := acceptor.New(cfg, Version)
	if err != nil {
		return acceptor.NewRuntimeError(fmt.Errorf("failed to create service: %w", err))
	}

	if cliCtx.Bool(flags.CheckPrereq.Name) {
		return svc.CheckPrereqs(cliCtx.Context)
	}

	if cfg.RunInterval > 0 && cfg.TargetSuite == "" {
		return runScheduled(cliCtx.Context, logger, cfg, svc)
	}

	return svc.Run(cliCtx.Context)
}

// runScheduled keeps the suite running at the configured interval with the
// healthz and metrics servers up. Suite failures are logged and the loop
// continues; only runtime errors abort scheduled mode.
func runScheduled(ctx context.Context, logger *zap.Logger, cfg *acceptor.Config, svc *acceptor.Service) error {
	httpSvc := service.New(logger)
	httpSvc.Start(ctx)
	defer httpSvc.Shutdown()

	sched := acceptor.NewDefaultScheduler(cfg.RunInterval, false, logger)
	sched.RegisterCallback(func() error {
		err := svc.Run(ctx)
		if acceptor.IsRuntimeError(err) {
			return err
		}
		if err != nil {
			logger.Warn("suite run reported failures", zap.Error(err))
		}
		return nil
	})

	if err := sched.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	if err := sched.Stop(); err != nil {
		logger.Error("stopping scheduler", zap.Error(err))
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return sched.WaitForShutdown(waitCtx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}
