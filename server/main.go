package main

import (
	"context"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"income-estimator/config"
	"income-estimator/domain"
	"income-estimator/estimate"
	"income-estimator/http"
	"income-estimator/rates"
	"os"

	nhttp "net/http"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.Load()
	if err != nil {
		level.Error(logger).Log("msg", "loading config", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(cfg.LogLevel, level.InfoValue())))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	requests, latency := rates.NewMetrics(reg)
	ratesService := rates.NewService(cfg.RateApi.URL, cfg.RateApi.Key, cfg.RateApi.Timeout)
	ratesService = rates.NewLoggingService(level.Debug(log.With(logger, "component", "rates_rest")), ratesService)
	ratesService = rates.NewInstrumentingService(requests, latency, ratesService)

	holder := rates.NewHolder(domain.DefaultRate)
	refresher := rates.NewRefresher(ratesService, holder, cfg.RateApi.Base(), cfg.RateApi.Local(), log.With(logger, "component", "rates_refresh"))
	// one best-effort fetch; estimates use the default rate until it lands
	refresher.Start(context.Background())

	estimateService := estimate.NewService(holder)
	estimateService = estimate.NewLoggingService(level.Debug(log.With(logger, "component", "estimate")), estimateService)
	estimateService = estimate.NewInstrumentingService(estimate.NewMetrics(reg), estimateService)

	handler := http.NewServer(estimateService, holder, cfg.RateApi.Base(), cfg.RateApi.Local(), reg, log.With(logger, "component", "http"))

	level.Info(logger).Log("msg", "listening", "addr", cfg.HTTPAddr, "base", cfg.RateApi.Base(), "local", cfg.RateApi.Local())
	if err := nhttp.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		level.Error(logger).Log("msg", "server stopped", "err", err)
		os.Exit(1)
	}
}
