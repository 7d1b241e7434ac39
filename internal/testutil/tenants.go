package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// PricingJSON is a tenant pricing.json in the native format. At 100 pieces it
// prices one front color at 1.68 a shirt.
const PricingJSON = `{
  "shop_name": "Demo Tees",
  "garments": {
    "gildan-2000": {"label": "Gildan 2000", "base_cost": "3.45"}
  },
  "garment_markup_pct": "0.40",
  "print_tiers": [
    {"min": 1, "max": 23, "prices": {"1": "4.00", "2": "5.00"}},
    {"min": 24, "max": 143, "prices": {"1": "1.68", "2": "2.53"}},
    {"min": 144, "prices": {"1": "1.20", "2": "1.80"}}
  ],
  "max_colors_per_placement": {"front": 2},
  "default_max_colors": 2,
  "min_quantity": 24,
  "portal": {"enabled": true}
}`

// WriteTenantDir writes pricing.json for each tenant under a temp directory and
// returns the directory.
func WriteTenantDir(t *testing.T, tenants ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, tenant := range tenants {
		dir := filepath.Join(root, tenant)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pricing.json"), []byte(PricingJSON), 0o600))
	}
	return root
}
