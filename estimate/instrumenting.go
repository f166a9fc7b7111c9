package estimate

import (
	"context"
	"github.com/prometheus/client_golang/prometheus"
	"income-estimator/domain"
)

// instrumentingService decorates an estimate.Service with a prometheus counter
type instrumentingService struct {
	requests *prometheus.CounterVec
	next     Service
}

// NewInstrumentingService counts estimates by contract type and outcome.
func NewInstrumentingService(requests *prometheus.CounterVec, s Service) Service {
	return &instrumentingService{
		requests: requests,
		next:     s,
	}
}

func (s *instrumentingService) Estimate(ctx context.Context, req Request) (res domain.Result, err error) {
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "invalid_input"
		}
		s.requests.WithLabelValues(req.ContractType.String(), outcome).Inc()
	}()
	return s.next.Estimate(ctx, req)
}

// NewMetrics registers the estimate counter with reg.
func NewMetrics(reg prometheus.Registerer) *prometheus.CounterVec {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estimator",
		Subsystem: "estimate",
		Name:      "requests_total",
		Help:      "Number of estimates by contract type and outcome.",
	}, []string{"contract", "outcome"})
	reg.MustRegister(requests)
	return requests
}
