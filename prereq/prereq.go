// Package prereq verifies that the browser-automation tool and the target
// environment are reachable before any category runs.
package prereq

import (
	"context"
	"net/http"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultHTTPTimeout bounds the target reachability probe.
const DefaultHTTPTimeout = 15 * time.Second

// Config holds prerequisite-check configuration.
type Config struct {
	Log         *zap.Logger
	RunnerBin   string // Binary wrapping the automation framework
	TargetURL   string // Base URL of the UI under test
	HTTPTimeout time.Duration
}

// Checker runs the prerequisite checks.
type Checker struct {
	log         *zap.Logger
	runnerBin   string
	targetURL   string
	httpTimeout time.Duration

	// Injection points for tests.
	lookPath   func(string) (string, error)
	httpClient *http.Client
}

// NewChecker creates a Checker.
func NewChecker(cfg Config) *Checker {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	return &Checker{
		log:         cfg.Log,
		runnerBin:   cfg.RunnerBin,
		targetURL:   cfg.TargetURL,
		httpTimeout: cfg.HTTPTimeout,
		lookPath:    exec.LookPath,
		httpClient:  &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Check verifies the automation tool is installed and the target URL answers
// HTTP requests. Any failure means no category may run.
func (c *Checker) Check(ctx context.Context) error {
	if err := c.checkTool(); err != nil {
		return err
	}
	return c.checkTarget(ctx)
}

func (c *Checker) checkTool() error {
	path, err := c.lookPath(c.runnerBin)
	if err != nil {
		return errors.Wrapf(err, "automation runner %q not found in PATH", c.runnerBin)
	}
	c.log.Debug("automation runner found", zap.String("bin", c.runnerBin), zap.String("path", path))
	return nil
}

func (c *Checker) checkTarget(ctx context.Context) error {
	if c.targetURL == "" {
		return errors.New("target URL is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.httpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.targetURL, nil)
	if err != nil {
		return errors.Wrap(err, "building target probe request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "target %s is not reachable", c.targetURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("target %s answered with status %d", c.targetURL, resp.StatusCode)
	}
	c.log.Debug("target reachable", zap.String("url", c.targetURL), zap.Int("status", resp.StatusCode))
	return nil
}
