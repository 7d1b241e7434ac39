package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalculator struct {
	b   *model.Breakdown
	err error
}

func (s stubCalculator) Compute(model.OrderRequest, *model.PricingConfig) (*model.Breakdown, error) {
	return s.b, s.err
}

func TestQuoteService_Calculate(t *testing.T) {
	cfg := testutil.PricingConfig()

	tests := []struct {
		name       string
		channel    string
		order      model.OrderRequest
		wantResult string
		wantErr    bool
	}{
		{
			name:       "priced quote",
			channel:    ChannelConsole,
			order:      catalogOrder(100, model.Placement{Name: "front", Colors: 1}),
			wantResult: resultSuccess,
		},
		{
			name:       "guardrail quote",
			channel:    ChannelPortal,
			order:      catalogOrder(10, model.Placement{Name: "front", Colors: 1}),
			wantResult: resultGuardrail,
		},
		{
			name:       "validation error",
			channel:    ChannelPortal,
			order:      catalogOrder(0, model.Placement{Name: "front", Colors: 1}),
			wantResult: resultValidationError,
			wantErr:    true,
		},
	}

	svc := NewQuoteService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.QuoteCalculationsTotal.WithLabelValues(tt.channel, tt.wantResult)
			before := promtest.ToFloat64(counter)

			b, err := svc.Calculate(tt.channel, tt.order, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, b)
			} else {
				require.NoError(t, err)
				require.NotNil(t, b)
			}
			assert.Equal(t, before+1, promtest.ToFloat64(counter))
		})
	}
}

func TestQuoteService_MatchesEngine(t *testing.T) {
	cfg := testutil.PricingConfig()
	order := catalogOrder(144, model.Placement{Name: "front", Colors: 2}, model.Placement{Name: "back", Colors: 1})

	direct, err := NewQuoteCalculator().Compute(order, cfg)
	require.NoError(t, err)

	console, err := NewQuoteService(nil).Calculate(ChannelConsole, order, cfg)
	require.NoError(t, err)
	portal, err := NewQuoteService(nil).Calculate(ChannelPortal, order, cfg)
	require.NoError(t, err)

	assert.Equal(t, direct, console)
	assert.Equal(t, console, portal)
}

func TestQuoteService_GuardrailCountsTenant(t *testing.T) {
	cfg := testutil.PricingConfig()
	counter := metrics.GuardrailTriggeredTotal.WithLabelValues(cfg.Tenant)
	before := promtest.ToFloat64(counter)

	b, err := NewQuoteService(nil).Calculate(ChannelPortal, catalogOrder(10, model.Placement{Name: "front", Colors: 1}), cfg)
	require.NoError(t, err)
	assert.True(t, b.GuardrailTriggered)
	assert.Equal(t, before+1, promtest.ToFloat64(counter))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", model.NewValidationError("quantity", "too small"), resultValidationError},
		{"config", model.NewConfigError("acme", "gap"), resultConfigError},
		{"wrapped config", errors.Join(errors.New("compute"), model.NewConfigError("acme", "gap")), resultConfigError},
		{"other", errors.New("boom"), resultError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestQuoteService_StubEngineError(t *testing.T) {
	svc := NewQuoteService(stubCalculator{err: errors.New("engine down")})
	b, err := svc.Calculate(ChannelConsole, model.OrderRequest{}, testutil.PricingConfig())
	assert.EqualError(t, err, "engine down")
	assert.Nil(t, b)
}

func TestNewQuoteID(t *testing.T) {
	pattern := regexp.MustCompile(`^Q-[0-9A-F]{8}$`)
	a, b := NewQuoteID(), NewQuoteID()
	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
}

func TestColorsClamped(t *testing.T) {
	cfg := testutil.PricingConfig()

	tests := []struct {
		name       string
		placements []model.Placement
		want       bool
	}{
		{"within limits", []model.Placement{{Name: "front", Colors: 4}, {Name: "left_sleeve", Colors: 2}}, false},
		{"sleeve over limit", []model.Placement{{Name: "Left_Sleeve", Colors: 3}}, true},
		{"unlisted placement uses default", []model.Placement{{Name: "pocket", Colors: 5}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := catalogOrder(100, tt.placements...)
			assert.Equal(t, tt.want, ColorsClamped(order, cfg))
		})
	}
	assert.False(t, ColorsClamped(model.OrderRequest{}, nil))
}
