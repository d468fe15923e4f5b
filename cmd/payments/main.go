package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apppayment "github.com/velozshop/veloz/internal/application/payment"
	"github.com/velozshop/veloz/internal/config"
	"github.com/velozshop/veloz/internal/infrastructure/boltstore"
	httptransport "github.com/velozshop/veloz/internal/infrastructure/http"
	"github.com/velozshop/veloz/internal/pkg/logging"
	"github.com/velozshop/veloz/internal/pkg/server"
)

func main() {
	cfg := config.LoadPayments()

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	store, err := boltstore.Open(cfg.DBPath)
	if err != nil {
		logger.Error("payments_db_open_failed", zap.String("path", cfg.DBPath), zap.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	metrics := httptransport.NewMetrics(prometheus.DefaultRegisterer)
	mw := httptransport.NewMiddleware(logger, metrics)

	svc := apppayment.NewService(store, apppayment.NewRandomDecider(cfg.ApproveRate))
	handler := httptransport.NewPaymentHandler(svc, mw, cfg.ServiceName)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	if err := server.Run(cfg.Addr, mux, logger); err != nil {
		logger.Error("http_server_error", zap.Error(err))
		os.Exit(1)
	}
}
