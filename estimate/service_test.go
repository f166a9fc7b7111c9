package estimate

import (
	"bytes"
	"context"
	"errors"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"income-estimator/domain"
	"testing"
)

type mockRates struct {
	rate  domain.Rate
	reads int
}

func (m *mockRates) Current() domain.Rate {
	m.reads++
	return m.rate
}

func TestService_Estimate(t *testing.T) {
	rates := &mockRates{rate: 117.0}
	s := NewService(rates)

	res, err := s.Estimate(context.Background(), Request{
		GrossIncome:  "1000.00",
		RequestDate:  date("2024-01-01"),
		ContractType: domain.FixedPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, rates.reads)
	assert.Equal(t, domain.Rate(117.0), res.Rate)
	assert.Equal(t, "110605.95", res.Direct.Net.StringFixed(2))
	assert.Equal(t, "105183.00", res.Marketplace.Net.StringFixed(2))
}

func TestService_EstimateInvalidInput(t *testing.T) {
	s := NewService(&mockRates{rate: 117.0})

	for _, raw := range []string{"", "abc", "NaN", "ten"} {
		res, err := s.Estimate(context.Background(), Request{GrossIncome: raw, RequestDate: date("2024-01-01")})

		assert.True(t, errors.Is(err, domain.ErrInvalidInput), raw)
		assert.Equal(t, domain.Result{}, res, raw)
	}
}

func TestService_EstimateWithDefaultRate(t *testing.T) {
	s := NewService(&mockRates{rate: domain.DefaultRate})

	res, err := s.Estimate(context.Background(), Request{GrossIncome: "100", RequestDate: date("2024-01-01")})

	require.NoError(t, err)
	assert.Equal(t, "94.54", res.Direct.Net.StringFixed(2))
	assert.Equal(t, "89.00", res.Marketplace.Net.StringFixed(2))
}

func TestLoggingService(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingService(log.NewLogfmtLogger(&buf), NewService(&mockRates{rate: 2}))

	_, err := s.Estimate(context.Background(), Request{GrossIncome: "10", RequestDate: date("2024-01-01"), ContractType: domain.Hourly})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "method=estimate")
	assert.Contains(t, buf.String(), "contract=hourly")
	assert.Contains(t, buf.String(), "direct_net=18.91")
}

func TestInstrumentingService(t *testing.T) {
	reg := prometheus.NewRegistry()
	requests := NewMetrics(reg)
	s := NewInstrumentingService(requests, NewService(&mockRates{rate: 1}))

	_, _ = s.Estimate(context.Background(), Request{GrossIncome: "10", ContractType: domain.Hourly})
	_, _ = s.Estimate(context.Background(), Request{GrossIncome: "x", ContractType: domain.FixedPrice})

	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("hourly", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("fixed", "invalid_input")))
}
