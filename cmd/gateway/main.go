package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/velozshop/veloz/internal/config"
	"github.com/velozshop/veloz/internal/infrastructure/gateway"
	httptransport "github.com/velozshop/veloz/internal/infrastructure/http"
	"github.com/velozshop/veloz/internal/pkg/logging"
	"github.com/velozshop/veloz/internal/pkg/server"
)

func main() {
	cfg := config.LoadGateway()

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	gw, err := gateway.New(gateway.Config{
		OrdersURL:     cfg.OrdersURL,
		PaymentsURL:   cfg.PaymentsURL,
		InventoryURL:  cfg.InventoryURL,
		ProxyTimeout:  cfg.ProxyTimeout,
		HealthTimeout: cfg.HealthTimeout,
	}, logger)
	if err != nil {
		logger.Error("gateway_init_failed", zap.Error(err))
		os.Exit(1)
	}

	metrics := httptransport.NewMetrics(prometheus.DefaultRegisterer)
	mw := httptransport.NewMiddleware(logger, metrics)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", gw.Router(mw))

	if err := server.Run(cfg.Addr, mux, logger); err != nil {
		logger.Error("http_server_error", zap.Error(err))
		os.Exit(1)
	}
}
