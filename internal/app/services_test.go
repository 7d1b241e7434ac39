//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		validate func(*testing.T, *ServiceComponents)
	}{
		{
			name: "file-only configs with optional features off",
			cfg:  config.Config{Cache: config.CacheConfig{Size: 10, TTL: time.Minute}},
			validate: func(t *testing.T, c *ServiceComponents) {
				assert.NotNil(t, c.Quotes)
				assert.NotNil(t, c.PricingConfigs)
				assert.NotNil(t, c.Notifier)
				assert.Nil(t, c.PDF)
				assert.Nil(t, c.MailCircuitBreaker)
				assert.False(t, c.ConsoleTokens.Enabled())
			},
		},
		{
			name: "email enabled gets a mail circuit breaker",
			cfg: config.Config{
				Email: config.EmailConfig{PostmarkToken: "pm-token", From: "quotes@demo.test"},
			},
			validate: func(t *testing.T, c *ServiceComponents) {
				require.NotNil(t, c.MailCircuitBreaker)
				assert.Equal(t, "closed", c.MailCircuitBreaker.Snapshot().State)
			},
		},
		{
			name: "pdf and console tokens enabled",
			cfg: config.Config{
				Auth: config.AuthConfig{ConsoleSecret: "console-secret", ConsoleTokenTTL: time.Hour},
				PDF:  config.PDFConfig{Enabled: true, Timeout: 10 * time.Second},
			},
			validate: func(t *testing.T, c *ServiceComponents) {
				assert.NotNil(t, c.PDF)
				assert.True(t, c.ConsoleTokens.Enabled())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Tenants.Dir = t.TempDir()
			components := InitializeServices(tt.cfg, nil)
			require.NotNil(t, components)
			tt.validate(t, components)
		})
	}
}

func TestInitializeServices_WarmsTenantConfigs(t *testing.T) {
	cfg := config.Config{
		Cache:   config.CacheConfig{Size: 10, TTL: time.Minute},
		Tenants: config.TenantsConfig{Dir: testutil.WriteTenantDir(t, "demo", "globex")},
	}

	components := InitializeServices(cfg, nil)

	active, err := components.PricingConfigs.GetActive(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, "Demo Tees", active.ShopName)
	assert.Equal(t, 24, active.MinQuantity)
}
