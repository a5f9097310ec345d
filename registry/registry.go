// Package registry manages the category catalog: the static built-in set of
// QA categories plus optional overrides loaded from a YAML file.
package registry

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/helioswap/qa-acceptor/types"
)

// DefaultCategoryTimeout bounds a single category invocation.
const DefaultCategoryTimeout = 300 * time.Second

// defaultCategories is the fixed category set. Order here is invocation
// order.
var defaultCategories = []types.Category{
	{Name: "smoke", Description: "App loads, wallet connect button renders", Tag: "@smoke", Critical: true, Quick: true},
	{Name: "api", Description: "Quote and token-list API endpoints respond", Tag: "@api", Critical: true, Quick: true},
	{Name: "e2e", Description: "Swap and liquidity flows against testnet", Tag: "@e2e"},
	{Name: "performance", Description: "Page-load and interaction budgets", Tag: "@performance"},
	{Name: "accessibility", Description: "axe-core scans of core pages", Tag: "@accessibility"},
	{Name: "security", Description: "Headers, CSP and mixed-content checks", Tag: "@security", Critical: true},
}

// Registry holds the resolved category catalog.
type Registry struct {
	log        *zap.Logger
	categories []types.Category
}

// Config contains registry configuration.
type Config struct {
	Log *zap.Logger
	// CategoryConfigFile optionally points at a YAML file overriding the
	// built-in catalog.
	CategoryConfigFile string
	DefaultTimeout     time.Duration
}

type categoryFile struct {
	Categories []categoryEntry `yaml:"categories"`
}

// categoryEntry is the YAML form of a category. Timeouts are duration
// strings ("120s", "5m").
type categoryEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tag         string `yaml:"tag"`
	Critical    bool   `yaml:"critical"`
	Quick       bool   `yaml:"quick"`
	Timeout     string `yaml:"timeout"`
}

// NewRegistry creates a registry. Without a config file it serves the
// built-in catalog.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = DefaultCategoryTimeout
	}

	cats := make([]types.Category, len(defaultCategories))
	copy(cats, defaultCategories)

	if cfg.CategoryConfigFile != "" {
		loaded, err := loadCategoryFile(cfg.CategoryConfigFile)
		if err != nil {
			return nil, errors.Wrap(err, "loading category config")
		}
		cats = loaded
	}

	for i := range cats {
		if cats[i].Timeout == 0 {
			cats[i].Timeout = cfg.DefaultTimeout
		}
	}

	cfg.Log.Debug("registry loaded", zap.Int("categories", len(cats)))
	return &Registry{log: cfg.Log, categories: cats}, nil
}

func loadCategoryFile(path string) ([]types.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading category file")
	}
	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshaling category file")
	}
	if len(f.Categories) == 0 {
		return nil, errors.Errorf("category file %s defines no categories", path)
	}

	cats := make([]types.Category, 0, len(f.Categories))
	seen := make(map[string]bool, len(f.Categories))
	for _, e := range f.Categories {
		if e.Name == "" || e.Tag == "" {
			return nil, errors.Errorf("category file %s: every category needs a name and a tag", path)
		}
		if seen[e.Name] {
			return nil, errors.Errorf("category file %s: duplicate category %q", path, e.Name)
		}
		seen[e.Name] = true

		var timeout time.Duration
		if e.Timeout != "" {
			var err error
			if timeout, err = time.ParseDuration(e.Timeout); err != nil {
				return nil, errors.Wrapf(err, "category %s: invalid timeout %q", e.Name, e.Timeout)
			}
		}
		cats = append(cats, types.Category{
			Name:        e.Name,
			Description: e.Description,
			Tag:         e.Tag,
			Critical:    e.Critical,
			Quick:       e.Quick,
			Timeout:     timeout,
		})
	}
	return cats, nil
}

// Categories returns the full catalog in invocation order.
func (r *Registry) Categories() []types.Category {
	return r.categories
}

// Category returns the named category.
func (r *Registry) Category(name string) (types.Category, bool) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, true
		}
	}
	return types.Category{}, false
}

// QuickCategories returns the minimal critical subset used by --quick.
func (r *Registry) QuickCategories() []types.Category {
	var quick []types.Category
	for _, c := range r.categories {
		if c.Quick {
			quick = append(quick, c)
		}
	}
	return quick
}
