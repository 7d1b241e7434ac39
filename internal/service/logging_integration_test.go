//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	server, err := testutil.StartMongo(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Terminate(context.Background()) })

	db, err := repository.NewMongoDB(server.URI, testutil.DBName(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	svc := NewLoggingService(repository.NewLogsRepository(db))

	base := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	var entries []*model.LogEntry
	for i := 0; i < 7; i++ {
		action := model.ActionPortalQuote
		if i%2 == 1 {
			action = model.ActionConsoleQuote
		}
		entries = append(entries, &model.LogEntry{
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Level:      "info",
			Message:    "Quote computed",
			Tenant:     "acme",
			ActionType: action,
		})
	}
	entries = append(entries, &model.LogEntry{Timestamp: base, Level: "info", Message: "Quote computed", Tenant: "demo"})
	require.NoError(t, svc.CreateLogs(ctx, entries))

	t.Run("ids are assigned on insert", func(t *testing.T) {
		e := &model.LogEntry{Level: "warn", Message: "slow request", RequestID: "req-slow"}
		require.NoError(t, svc.CreateLog(ctx, e))
		assert.False(t, e.ID.IsZero())
	})

	t.Run("tenant activity pages newest first", func(t *testing.T) {
		page, err := svc.Activity(ctx, model.LogQuery{Tenant: "acme", Limit: 3, Offset: 1})
		require.NoError(t, err)

		assert.Equal(t, int64(7), page.Total)
		require.Len(t, page.Entries, 3)
		assert.True(t, page.Entries[0].Timestamp.Equal(base.Add(5*time.Minute)))
		assert.True(t, page.Entries[2].Timestamp.Equal(base.Add(3*time.Minute)))
	})

	t.Run("filter by action and window", func(t *testing.T) {
		page, err := svc.Activity(ctx, model.LogQuery{
			Tenant:     "acme",
			ActionType: model.ActionConsoleQuote,
			Since:      base.Add(2 * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		for _, e := range page.Entries {
			assert.Equal(t, model.ActionConsoleQuote, e.ActionType)
		}
	})

	t.Run("audit entries are queryable", func(t *testing.T) {
		svc.AuditQuote(ctx, model.ActionQuotePDF, "req-pdf", &model.Breakdown{
			Tenant:     "northwind",
			Quantity:   48,
			GrandTotal: decimal.RequireFromString("310.5"),
		})

		page, err := svc.Activity(ctx, model.LogQuery{Tenant: "northwind"})
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, "req-pdf", page.Entries[0].RequestID)
		assert.Equal(t, "310.50", page.Entries[0].Fields["grand_total"])
	})
}
