package httptransport

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(zap.NewNop(), NewMetrics(prometheus.NewRegistry()))
}
