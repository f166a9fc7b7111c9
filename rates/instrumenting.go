package rates

import (
	"context"
	"github.com/prometheus/client_golang/prometheus"
	"income-estimator/domain"
	"time"
)

// instrumentingService decorates a rates.Service with prometheus metrics
type instrumentingService struct {
	requests *prometheus.CounterVec
	latency  prometheus.ObserverVec
	next     Service
}

// NewInstrumentingService returns a Service counting requests by outcome and observing their latency.
// requests and latency must both be labelled by "base" and "outcome".
func NewInstrumentingService(requests *prometheus.CounterVec, latency prometheus.ObserverVec, s Service) Service {
	return &instrumentingService{
		requests: requests,
		latency:  latency,
		next:     s,
	}
}

func (s *instrumentingService) ExchangeRates(ctx context.Context, base domain.Currency) (rates domain.Rates, err error) {
	defer func(begin time.Time) {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.requests.WithLabelValues(string(base), outcome).Inc()
		s.latency.WithLabelValues(string(base), outcome).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return s.next.ExchangeRates(ctx, base)
}

// NewMetrics registers the rate fetch metrics with reg.
func NewMetrics(reg prometheus.Registerer) (*prometheus.CounterVec, *prometheus.HistogramVec) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estimator",
		Subsystem: "rates",
		Name:      "fetch_total",
		Help:      "Number of exchange rate fetches by outcome.",
	}, []string{"base", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "estimator",
		Subsystem: "rates",
		Name:      "fetch_duration_seconds",
		Help:      "Exchange rate fetch latency in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"base", "outcome"})
	reg.MustRegister(requests, latency)
	return requests, latency
}
