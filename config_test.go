package acceptor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/helioswap/qa-acceptor/flags"
	"github.com/helioswap/qa-acceptor/reporting"
)

// buildConfig runs a throwaway cli app so NewConfig sees real flag parsing.
func buildConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error

	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		cfg, cfgErr = NewConfig(ctx, zap.NewNop())
		return nil
	}

	argv := append([]string{"qa-acceptor"}, args...)
	require.NoError(t, app.Run(argv))
	return cfg, cfgErr
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := buildConfig(t,
		"--target-url", "https://staging.helioswap.fi",
		"--testdir", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://staging.helioswap.fi", cfg.TargetURL)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "npx", cfg.RunnerBin)
	assert.Equal(t, reporting.DefaultArtifactPath, cfg.ArtifactPath)
	assert.Equal(t, 300*time.Second, cfg.CategoryTimeout)
	assert.Equal(t, 3*time.Second, cfg.CategoryDelay)
	assert.Equal(t, time.Duration(0), cfg.RunInterval)
	assert.False(t, cfg.Quick)
	assert.False(t, cfg.FailOnNonCritical)
	assert.Empty(t, cfg.TargetSuite)
}

func TestNewConfig_TargetURLRequired(t *testing.T) {
	_, err := buildConfig(t, "--testdir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target URL is required")
}

func TestNewConfig_TargetURLFromEnv(t *testing.T) {
	t.Setenv("QA_TARGET_URL", "https://helioswap.fi")

	cfg, err := buildConfig(t, "--testdir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://helioswap.fi", cfg.TargetURL)
}

func TestNewConfig_SuiteAndQuickExclusive(t *testing.T) {
	_, err := buildConfig(t,
		"--target-url", "https://staging.helioswap.fi",
		"--testdir", t.TempDir(),
		"--suite", "smoke",
		"--quick")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestNewConfig_Overrides(t *testing.T) {
	cfg, err := buildConfig(t,
		"--target-url", "https://staging.helioswap.fi",
		"--testdir", t.TempDir(),
		"--environment", "production",
		"--runner-bin", "/opt/ci/npx",
		"--output", "out/run.json",
		"--category-timeout", "120s",
		"--category-delay", "1s",
		"--fail-on-noncritical",
		"--suite", "smoke")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "/opt/ci/npx", cfg.RunnerBin)
	assert.Equal(t, "out/run.json", cfg.ArtifactPath)
	assert.Equal(t, 120*time.Second, cfg.CategoryTimeout)
	assert.Equal(t, time.Second, cfg.CategoryDelay)
	assert.True(t, cfg.FailOnNonCritical)
	assert.Equal(t, "smoke", cfg.TargetSuite)
}

func TestNewConfig_InvalidTimeout(t *testing.T) {
	_, err := buildConfig(t,
		"--target-url", "https://staging.helioswap.fi",
		"--testdir", t.TempDir(),
		"--category-timeout", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout must be positive")
}
