package tenant

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/quote-service/internal/domain/model"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

const (
	pricingFile = "pricing.json"
	shopFile    = "config.json"
)

// Loader reads tenant pricing configs from <root>/<tenant>/pricing.json, with
// an optional config.json beside it and QUOTE_<TENANT>_* env overrides.
type Loader struct {
	root string
}

// NewLoader creates a loader rooted at the tenants directory.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Root returns the tenants directory.
func (l *Loader) Root() string {
	return l.root
}

// Load reads, converts, defaults and validates a tenant's pricing config.
// Every call returns a fresh value.
func (l *Loader) Load(tenant string) (*model.PricingConfig, error) {
	dir, err := resolveDir(l.root, tenant)
	if err != nil {
		return nil, err
	}

	pricingPath := filepath.Join(dir, pricingFile)
	if _, err := os.Stat(pricingPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, tenant)
		}
		return nil, fmt.Errorf("stat %s: %w", pricingPath, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(pricingPath), kjson.Parser()); err != nil {
		return nil, model.NewConfigError(tenant, "read %s: %v", pricingFile, err)
	}

	shopPath := filepath.Join(dir, shopFile)
	if _, err := os.Stat(shopPath); err == nil {
		if err := k.Load(file.Provider(shopPath), kjson.Parser()); err != nil {
			return nil, model.NewConfigError(tenant, "read %s: %v", shopFile, err)
		}
	}

	legacy := k.Exists("screen_print")
	var cfg *model.PricingConfig
	if legacy {
		cfg, err = fromLegacy(tenant, k)
	} else {
		cfg, err = fromNative(tenant, k)
	}
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(tenant, cfg); err != nil {
		return nil, err
	}
	if legacy {
		coverBelowMinimum(cfg)
	}

	cfg.Tenant = tenant
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// List returns the tenants that have a pricing file, sorted.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var tenants []string
	for _, e := range entries {
		if !e.IsDir() || ValidateID(e.Name()) != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.root, e.Name(), pricingFile)); err == nil {
			tenants = append(tenants, e.Name())
		}
	}
	sort.Strings(tenants)
	return tenants, nil
}

func fromNative(tenant string, k *koanf.Koanf) (*model.PricingConfig, error) {
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return nil, model.NewConfigError(tenant, "encode config: %v", err)
	}
	var cfg model.PricingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, model.NewConfigError(tenant, "decode config: %v", err)
	}
	return &cfg, nil
}

// EnvPrefix returns the env var prefix for a tenant's overrides, e.g. QUOTE_BIG_SHOP_.
func EnvPrefix(tenant string) string {
	return "QUOTE_" + strings.ToUpper(strings.ReplaceAll(tenant, "-", "_")) + "_"
}

func applyEnvOverrides(tenant string, cfg *model.PricingConfig) error {
	prefix := EnvPrefix(tenant)
	k := koanf.New(".")
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("load %s* env: %w", prefix, err)
	}

	if k.Exists("min_quantity") {
		n, err := strconv.Atoi(strings.TrimSpace(k.String("min_quantity")))
		if err != nil {
			return model.NewConfigError(tenant, "%sMIN_QUANTITY: %v", prefix, err)
		}
		cfg.MinQuantity = n
	}
	if k.Exists("tax_rate") {
		rate, err := decimal.NewFromString(strings.TrimSpace(k.String("tax_rate")))
		if err != nil {
			return model.NewConfigError(tenant, "%sTAX_RATE: %v", prefix, err)
		}
		cfg.TaxRate = rate
	}
	return nil
}
