package estimate

import (
	"context"
	"github.com/go-kit/log"
	"income-estimator/calendar"
	"income-estimator/domain"
	"time"
)

// loggingService decorates an estimate.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Estimate(ctx context.Context, req Request) (res domain.Result, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "estimate",
			"gross", req.GrossIncome,
			"date", calendar.FormatDate(req.RequestDate),
			"contract", req.ContractType,
			"rate", res.Rate,
			"direct_net", res.Direct.Net.StringFixed(2),
			"marketplace_net", res.Marketplace.Net.StringFixed(2),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Estimate(ctx, req)
}
