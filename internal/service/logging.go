package service

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// LoggingService persists request logs and quote audit entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// Activity returns one page of stored entries, newest first, with the
	// total number that matched.
	Activity(ctx context.Context, q model.LogQuery) (*model.LogPage, error)

	// AuditQuote records a computed breakdown. It never fails the caller.
	AuditQuote(ctx context.Context, action, requestID string, b *model.Breakdown)
}

type loggingService struct {
	repo repository.LogStore
}

// NewLoggingService returns a LoggingService over repo. With a nil repo,
// audit entries only reach the process log.
func NewLoggingService(repo repository.LogStore) LoggingService {
	return &loggingService{repo: repo}
}

func (s *loggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	return s.repo.Insert(ctx, entry)
}

func (s *loggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	return s.repo.Insert(ctx, entries...)
}

func (s *loggingService) Activity(ctx context.Context, q model.LogQuery) (*model.LogPage, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	switch {
	case q.Limit <= 0:
		q.Limit = defaultActivityLimit
	case q.Limit > maxActivityLimit:
		q.Limit = maxActivityLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	page := &model.LogPage{Limit: q.Limit, Offset: q.Offset}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.repo.Find(gctx, q)
		page.Entries = entries
		return err
	})
	g.Go(func() error {
		total, err := s.repo.Count(gctx, q)
		page.Total = total
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if page.Entries == nil {
		page.Entries = []model.LogEntry{}
	}
	return page, nil
}

// AuditQuote logs one line per computed breakdown and persists it when a
// repository is configured. Customer contact data never reaches this entry.
func (s *loggingService) AuditQuote(ctx context.Context, action, requestID string, b *model.Breakdown) {
	if b == nil {
		return
	}

	total := model.FormatMoney(b.GrandTotal)
	log.Info().
		Str("action", action).
		Str("request_id", requestID).
		Str("tenant", b.Tenant).
		Int("quantity", b.Quantity).
		Str("grand_total", total).
		Bool("guardrail_triggered", b.GuardrailTriggered).
		Msg("Quote computed")

	if s.repo == nil {
		return
	}
	entry := (&model.LogEntry{
		Level:      "info",
		Message:    "Quote computed",
		RequestID:  requestID,
		Tenant:     b.Tenant,
		ActionType: action,
	}).WithFields(map[string]interface{}{
		"quantity":            b.Quantity,
		"grand_total":         total,
		"guardrail_triggered": b.GuardrailTriggered,
		"line_items":          len(b.LineItems),
	})
	if err := s.repo.Insert(ctx, entry); err != nil {
		log.Warn().Err(err).Str("tenant", b.Tenant).Msg("Failed to persist quote audit entry")
	}
}
