package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apporder "github.com/velozshop/veloz/internal/application/order"
	"github.com/velozshop/veloz/internal/config"
	httptransport "github.com/velozshop/veloz/internal/infrastructure/http"
	"github.com/velozshop/veloz/internal/infrastructure/httpclient"
	"github.com/velozshop/veloz/internal/infrastructure/memory"
	"github.com/velozshop/veloz/internal/pkg/logging"
	"github.com/velozshop/veloz/internal/pkg/server"
)

func main() {
	cfg := config.LoadOrders()

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	metrics := httptransport.NewMetrics(prometheus.DefaultRegisterer)
	mw := httptransport.NewMiddleware(logger, metrics)

	svc := apporder.NewService(
		memory.NewOrderStore(),
		httpclient.NewInventoryClient(cfg.InventoryURL),
		httpclient.NewPaymentClient(cfg.PaymentsURL),
	)
	handler := httptransport.NewOrderHandler(svc, mw, cfg.ServiceName)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	if err := server.Run(cfg.Addr, mux, logger); err != nil {
		logger.Error("http_server_error", zap.Error(err))
		os.Exit(1)
	}
}
