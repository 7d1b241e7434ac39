package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingLogs collects CreateLogs batches.
type recordingLogs struct {
	mocks.MockLoggingService
	mu      sync.Mutex
	batches [][]*model.LogEntry
	err     error
	block   chan struct{}
}

func (r *recordingLogs) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, entries)
	return r.err
}

func (r *recordingLogs) sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.batches))
	for i, b := range r.batches {
		out[i] = len(b)
	}
	return out
}

func requestEntry(path string) *model.LogEntry {
	return &model.LogEntry{Level: "info", Message: "HTTP request", Path: path, Tenant: "acme"}
}

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.FlushInterval)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger_NilService(t *testing.T) {
	al := NewAsyncLogger(nil, DefaultAsyncLoggerConfig())

	assert.Nil(t, al)
	assert.False(t, al.Log(requestEntry("/api/v1/quotes/acme")))
	assert.NoError(t, al.Close(context.Background()))
	assert.Equal(t, AsyncLoggerStats{}, al.Stats())
}

func TestAsyncLogger_FillsDefaults(t *testing.T) {
	al := NewAsyncLogger(&recordingLogs{}, AsyncLoggerConfig{})
	defer func() { _ = al.Close(context.Background()) }()

	assert.Equal(t, DefaultAsyncLoggerConfig(), al.cfg)
}

func TestAsyncLogger_WritesFullBatches(t *testing.T) {
	sink := &recordingLogs{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 100, BatchSize: 5, FlushInterval: time.Hour})

	for i := 0; i < 10; i++ {
		require.True(t, al.Log(requestEntry("/api/v1/quotes/acme")))
	}

	assert.Eventually(t, func() bool {
		return al.Stats().Written == 10
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{5, 5}, sink.sizes())

	require.NoError(t, al.Close(context.Background()))
}

func TestAsyncLogger_FlushesPartialBatchOnTick(t *testing.T) {
	sink := &recordingLogs{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 10, BatchSize: 50, FlushInterval: 20 * time.Millisecond})
	defer func() { _ = al.Close(context.Background()) }()

	al.Log(requestEntry("/api/v1/portal/acme/quotes"))
	al.Log(requestEntry("/api/v1/portal/acme/config"))

	assert.Eventually(t, func() bool {
		return al.Stats().Written == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{2}, sink.sizes())
}

func TestAsyncLogger_CloseDrainsQueue(t *testing.T) {
	sink := &recordingLogs{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 10, BatchSize: 50, FlushInterval: time.Hour})

	for i := 0; i < 3; i++ {
		al.Log(requestEntry("/api/v1/quotes/acme"))
	}
	require.NoError(t, al.Close(context.Background()))

	assert.Equal(t, int64(3), al.Stats().Written)
	assert.False(t, al.Log(requestEntry("/late")), "closed logger drops entries")
	assert.Equal(t, int64(1), al.Stats().Dropped)
	assert.NoError(t, al.Close(context.Background()), "second close is a no-op")
}

func TestAsyncLogger_DropsWhenBufferFull(t *testing.T) {
	sink := &recordingLogs{block: make(chan struct{})}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 2, BatchSize: 1, FlushInterval: time.Hour})

	// The first entry is taken by the writer, which then blocks in CreateLogs.
	require.True(t, al.Log(requestEntry("/1")))
	assert.Eventually(t, func() bool { return len(al.entries) == 0 }, time.Second, time.Millisecond)

	assert.True(t, al.Log(requestEntry("/2")))
	assert.True(t, al.Log(requestEntry("/3")))
	assert.False(t, al.Log(requestEntry("/4")))

	stats := al.Stats()
	assert.Equal(t, int64(3), stats.Enqueued)
	assert.Equal(t, int64(1), stats.Dropped)

	close(sink.block)
	require.NoError(t, al.Close(context.Background()))
	assert.Equal(t, int64(3), al.Stats().Written)
}

func TestAsyncLogger_CountsFailures(t *testing.T) {
	sink := &recordingLogs{err: errors.New("mongodb: no reachable servers")}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 10, BatchSize: 2, FlushInterval: time.Hour})

	al.Log(requestEntry("/a"))
	al.Log(requestEntry("/b"))
	require.NoError(t, al.Close(context.Background()))

	stats := al.Stats()
	assert.Equal(t, int64(2), stats.Failed)
	assert.Zero(t, stats.Written)
}

func TestAsyncLogger_CloseHonoursContext(t *testing.T) {
	sink := &recordingLogs{block: make(chan struct{})}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 10, BatchSize: 1, FlushInterval: time.Hour})
	al.Log(requestEntry("/stuck"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, al.Close(ctx), context.DeadlineExceeded)

	close(sink.block)
}

func TestAsyncLogger_WithMockService(t *testing.T) {
	svc := mocks.NewMockLoggingService(t)
	svc.On("CreateLogs", mock.Anything, mock.MatchedBy(func(entries []*model.LogEntry) bool {
		return len(entries) == 1 && entries[0].Tenant == "acme"
	})).Return(nil).Once()

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 4, BatchSize: 1, FlushInterval: time.Hour})
	al.Log(requestEntry("/api/v1/quotes/acme"))
	require.NoError(t, al.Close(context.Background()))
}
