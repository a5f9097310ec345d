// Package flags defines the CLI surface of qa-acceptor.
package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "QA_ACCEPTOR"

func prefixEnvVars(name string) []string {
	return []string{fmt.Sprintf("%s_%s", EnvVarPrefix, name)}
}

var (
	Suite = &cli.StringFlag{
		Name:    "suite",
		Value:   "",
		EnvVars: prefixEnvVars("SUITE"),
		Usage:   "Run exactly one named category (eg. 'smoke'); no aggregate artifact is written",
	}
	Quick = &cli.BoolFlag{
		Name:    "quick",
		Value:   false,
		EnvVars: prefixEnvVars("QUICK"),
		Usage:   "Run only the minimal critical subset (smoke + api)",
	}
	CheckPrereq = &cli.BoolFlag{
		Name:    "check-prereq",
		Value:   false,
		EnvVars: prefixEnvVars("CHECK_PREREQ"),
		Usage:   "Verify the automation tool and target are reachable, then exit without running categories",
	}
	Environment = &cli.StringFlag{
		Name:    "environment",
		Value:   "staging",
		EnvVars: prefixEnvVars("ENVIRONMENT"),
		Usage:   "Environment label recorded on the run summary (eg. 'staging', 'production')",
	}
	TargetURL = &cli.StringFlag{
		Name:    "target-url",
		Value:   "",
		EnvVars: prefixEnvVars("TARGET_URL"),
		Usage:   "Base URL of the UI under test; falls back to QA_TARGET_URL from the environment or .env",
	}
	RunnerBin = &cli.StringFlag{
		Name:    "runner-bin",
		Value:   "npx",
		EnvVars: prefixEnvVars("RUNNER_BIN"),
		Usage:   "Binary used to invoke the browser-automation framework",
	}
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   ".",
		EnvVars: prefixEnvVars("TESTDIR"),
		Usage:   "Directory the framework is invoked from",
	}
	Categories = &cli.StringFlag{
		Name:    "categories",
		Value:   "",
		EnvVars: prefixEnvVars("CATEGORIES"),
		Usage:   "Path to a category config file overriding the built-in catalog (eg. 'categories.yaml')",
	}
	Output = &cli.StringFlag{
		Name:    "output",
		Value:   "",
		EnvVars: prefixEnvVars("OUTPUT"),
		Usage:   "Path of the JSON summary artifact (default 'results/summary.json')",
	}
	CategoryTimeout = &cli.DurationFlag{
		Name:    "category-timeout",
		Value:   300 * time.Second,
		EnvVars: prefixEnvVars("CATEGORY_TIMEOUT"),
		Usage:   "Maximum duration of a single category invocation",
	}
	CategoryDelay = &cli.DurationFlag{
		Name:    "category-delay",
		Value:   3 * time.Second,
		EnvVars: prefixEnvVars("CATEGORY_DELAY"),
		Usage:   "Pause between category invocations",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between suite runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	FailOnNonCritical = &cli.BoolFlag{
		Name:    "fail-on-noncritical",
		Value:   false,
		EnvVars: prefixEnvVars("FAIL_ON_NONCRITICAL"),
		Usage:   "Exit non-zero when non-critical categories fail (default: non-critical failures still exit 0)",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var Flags = []cli.Flag{
	Suite,
	Quick,
	CheckPrereq,
	Environment,
	TargetURL,
	RunnerBin,
	TestDir,
	Categories,
	Output,
	CategoryTimeout,
	CategoryDelay,
	RunInterval,
	FailOnNonCritical,
	LogLevel,
}
