package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/logger"
	"github.com/guttosm/quote-service/internal/service"
)

// AsyncLoggerConfig sizes the request log writer.
type AsyncLoggerConfig struct {
	// BufferSize bounds entries waiting to be written. Entries beyond it are dropped.
	BufferSize int
	// BatchSize is the most entries written in one CreateLogs call.
	BatchSize int
	// FlushInterval is the longest an entry waits for a batch to fill.
	FlushInterval time.Duration
	// WriteTimeout bounds each CreateLogs call.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the production sizing.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		BatchSize:     50,
		FlushInterval: 2 * time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLoggerStats are cumulative counters since start.
type AsyncLoggerStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Failed   int64
}

// AsyncLogger persists request log entries off the request path. A single
// goroutine drains the buffer and writes batches through CreateLogs, so a slow
// database costs dropped entries rather than request latency.
type AsyncLogger struct {
	svc     service.LoggingService
	cfg     AsyncLoggerConfig
	entries chan *model.LogEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts a writer for svc. It returns nil when svc is nil;
// a nil *AsyncLogger accepts and discards entries.
func NewAsyncLogger(svc service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if svc == nil {
		return nil
	}
	def := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	al := &AsyncLogger{
		svc:     svc,
		cfg:     cfg,
		entries: make(chan *model.LogEntry, cfg.BufferSize),
		done:    make(chan struct{}),
	}
	go al.run()
	return al
}

// Log queues entry without blocking. It reports false when the entry was dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al == nil || entry == nil {
		return false
	}
	al.mu.RLock()
	defer al.mu.RUnlock()
	if al.closed {
		al.dropped.Add(1)
		return false
	}

	select {
	case al.entries <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

func (al *AsyncLogger) run() {
	defer close(al.done)

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	var batch []*model.LogEntry
	for {
		select {
		case entry, ok := <-al.entries:
			if !ok {
				al.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.cfg.BatchSize {
				al.flush(batch)
				batch = nil
			}
		case <-ticker.C:
			al.flush(batch)
			batch = nil
		}
	}
}

func (al *AsyncLogger) flush(batch []*model.LogEntry) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := int64(len(batch))
	if err := al.svc.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(n)
		log := logger.Logger()
		log.Warn().Err(err).Int64("entries", n).Msg("Failed to persist request logs")
		return
	}
	al.written.Add(n)
}

// Close stops accepting entries and waits for queued ones to be written, or
// for ctx to end.
func (al *AsyncLogger) Close(ctx context.Context) error {
	if al == nil {
		return nil
	}
	al.mu.Lock()
	if !al.closed {
		al.closed = true
		close(al.entries)
	}
	al.mu.Unlock()

	select {
	case <-al.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the writer's counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}
