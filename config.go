package acceptor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/helioswap/qa-acceptor/flags"
	"github.com/helioswap/qa-acceptor/reporting"
)

// Config carries everything the orchestrator needs for one invocation.
type Config struct {
	Environment        string
	TargetURL          string
	RunnerBin          string
	WorkDir            string
	CategoryConfigFile string
	ArtifactPath       string

	TargetSuite       string // --suite: run exactly one category
	Quick             bool   // --quick: minimal critical subset
	FailOnNonCritical bool

	CategoryTimeout time.Duration
	CategoryDelay   time.Duration
	RunInterval     time.Duration

	Log *zap.Logger
}

// NewConfig builds a Config from CLI flags and the environment. A .env file
// in the working directory is honored for QA_TARGET_URL, matching what the
// browser test specs themselves read.
func NewConfig(ctx *cli.Context, log *zap.Logger) (*Config, error) {
	workDir, err := filepath.Abs(ctx.String(flags.TestDir.Name))
	if err != nil {
		return nil, errors.Wrap(err, "resolving test directory")
	}

	// Best effort: absence of a .env file is not an error.
	if err := godotenv.Load(filepath.Join(workDir, ".env")); err == nil {
		log.Debug("loaded .env", zap.String("dir", workDir))
	}

	targetURL := ctx.String(flags.TargetURL.Name)
	if targetURL == "" {
		targetURL = os.Getenv("QA_TARGET_URL")
	}
	if targetURL == "" {
		return nil, errors.New("target URL is required (--target-url or QA_TARGET_URL)")
	}

	categoryConfig := ctx.String(flags.Categories.Name)
	if categoryConfig != "" {
		if categoryConfig, err = filepath.Abs(categoryConfig); err != nil {
			return nil, errors.Wrap(err, "resolving category config path")
		}
	}

	artifactPath := ctx.String(flags.Output.Name)
	if artifactPath == "" {
		artifactPath = reporting.DefaultArtifactPath
	}

	cfg := &Config{
		Environment:        ctx.String(flags.Environment.Name),
		TargetURL:          targetURL,
		RunnerBin:          ctx.String(flags.RunnerBin.Name),
		WorkDir:            workDir,
		CategoryConfigFile: categoryConfig,
		ArtifactPath:       artifactPath,
		TargetSuite:        ctx.String(flags.Suite.Name),
		Quick:              ctx.Bool(flags.Quick.Name),
		FailOnNonCritical:  ctx.Bool(flags.FailOnNonCritical.Name),
		CategoryTimeout:    ctx.Duration(flags.CategoryTimeout.Name),
		CategoryDelay:      ctx.Duration(flags.CategoryDelay.Name),
		RunInterval:        ctx.Duration(flags.RunInterval.Name),
		Log:                log,
	}

	if cfg.TargetSuite != "" && cfg.Quick {
		return nil, errors.New("--suite and --quick are mutually exclusive")
	}
	if cfg.CategoryTimeout <= 0 {
		return nil, errors.New("category timeout must be positive")
	}
	if cfg.CategoryDelay < 0 {
		return nil, errors.New("category delay cannot be negative")
	}

	return cfg, nil
}
