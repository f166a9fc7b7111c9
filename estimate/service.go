package estimate

import (
	"context"
	"fmt"
	"income-estimator/domain"
	"time"
)

// RateSource supplies the cached exchange rate. Current must not block.
type RateSource interface {
	Current() domain.Rate
}

// Request raw user input for an estimate
type Request struct {
	GrossIncome  string
	RequestDate  time.Time
	ContractType domain.ContractType
}

// Service estimates net income and arrival windows
type Service interface {
	Estimate(ctx context.Context, req Request) (domain.Result, error)
}

type service struct {
	// rates to read the current exchange rate from. Never refreshed from here.
	rates RateSource
}

// NewService constructs a valid Service
func NewService(rates RateSource) Service {
	return &service{
		rates: rates,
	}
}

// Estimate parses the gross income and computes both quotes with whatever rate is cached.
func (s *service) Estimate(_ context.Context, req Request) (domain.Result, error) {
	gross, err := ParseGross(req.GrossIncome)
	if err != nil {
		return domain.Result{}, fmt.Errorf("estimate: %w", err)
	}
	return Compute(gross, req.RequestDate, req.ContractType, s.rates.Current()), nil
}
