package rates

import (
	"context"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"income-estimator/domain"
	"math"
	"sync"
)

// Holder owns the current USD -> local exchange rate.
// Reads never block on a refresh; a refresh replaces the whole value or nothing.
type Holder struct {
	// lock synchronizes access to rate
	lock sync.RWMutex
	rate domain.Rate
}

// NewHolder returns a Holder seeded with initial
func NewHolder(initial domain.Rate) *Holder {
	return &Holder{rate: initial}
}

// Current returns the cached rate
func (h *Holder) Current() domain.Rate {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.rate
}

// Set replaces the cached rate. A non-positive or non-finite rate is rejected and the cached one kept.
func (h *Holder) Set(rate domain.Rate) error {
	if !valid(rate) {
		return fmt.Errorf("%w: bad rate: %v", domain.ErrRateFetch, rate)
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	h.rate = rate
	return nil
}

func valid(rate domain.Rate) bool {
	f := float64(rate)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Refresher loads the local currency rate once and stores it in a Holder.
type Refresher struct {
	service Service
	holder  *Holder
	base    domain.Currency
	local   domain.Currency
	logger  log.Logger
}

// NewRefresher constructs a valid Refresher
func NewRefresher(s Service, h *Holder, base domain.Currency, local domain.Currency, logger log.Logger) *Refresher {
	return &Refresher{
		service: s,
		holder:  h,
		base:    base,
		local:   local,
		logger:  logger,
	}
}

// Refresh fetches the rate table and updates the holder. On error the holder is left unchanged.
func (r *Refresher) Refresh(ctx context.Context) error {
	rates, err := r.service.ExchangeRates(ctx, r.base)
	if err != nil {
		return fmt.Errorf("refresh [%v]: %w", r.base, err)
	}

	rate, ok := rates[r.local]
	if !ok {
		return fmt.Errorf("refresh [%v]: %w: no rate for %v", r.base, domain.ErrRateFetch, r.local)
	}
	if err := r.holder.Set(rate); err != nil {
		return fmt.Errorf("refresh [%v] %v: %w", r.base, r.local, err)
	}
	return nil
}

// Start runs a single Refresh in a go-routine. Failures are logged and not retried.
// The returned channel is closed once the attempt has finished.
func (r *Refresher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := r.Refresh(ctx); err != nil {
			// keep serving with whatever rate is cached
			level.Error(r.logger).Log("msg", "exchange rate refresh failed", "base", r.base, "local", r.local, "rate", r.holder.Current(), "err", err)
			return
		}
		level.Info(r.logger).Log("msg", "exchange rate refreshed", "base", r.base, "local", r.local, "rate", r.holder.Current())
	}()
	return done
}
