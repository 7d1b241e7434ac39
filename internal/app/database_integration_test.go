//go:build integration

package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/guttosm/quote-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricingWithShopName(t *testing.T, shopName string) string {
	t.Helper()
	cfg := testutil.PricingConfig()
	cfg.ShopName = shopName
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	return string(raw)
}

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(mongoConfig(t))

		require.NotNil(t, components)
		assert.NotNil(t, components.DB)
		assert.NotNil(t, components.PricingConfigsRepo)
		assert.NotNil(t, components.LoggingService)
		assert.NotNil(t, components.PricingConfigsCircuitBreaker)
		assert.NotNil(t, components.LogsCircuitBreaker)
		assert.NoError(t, components.DB.HealthCheck(ctx))
	})

	t.Run("pricing configs repository round trip", func(t *testing.T) {
		t.Parallel()
		components := InitializeDatabase(mongoConfig(t))
		require.NotNil(t, components)

		doc, err := components.PricingConfigsRepo.Create(ctx, "acme", *testutil.PricingConfig(), "system")
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Version)

		active, err := components.PricingConfigsRepo.GetActive(ctx, "acme")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "Acme Screen Printing", active.Config.ShopName)
	})

	t.Run("circuit breaker integration", func(t *testing.T) {
		t.Parallel()
		cfg := mongoConfig(t)
		cfg.CircuitBreakerFailureThreshold = 2
		cfg.CircuitBreakerSuccessThreshold = 1
		cfg.CircuitBreakerTimeout = 100 * time.Millisecond

		components := InitializeDatabase(cfg)
		require.NotNil(t, components)

		stats := components.PricingConfigsCircuitBreaker.Snapshot()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)

		logsStats := components.LogsCircuitBreaker.Snapshot()
		assert.Equal(t, "closed", logsStats.State)
		assert.True(t, logsStats.IsHealthy)
	})
}
