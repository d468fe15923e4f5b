package httptransport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/velozshop/veloz/internal/pkg/logging"
)

const headerRequestID = "X-Request-ID"

// Middleware wires each route with the observability chain:
// Trace → request-scoped logger → metrics + access log → handler.
type Middleware struct {
	log     *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

func NewMiddleware(logger *zap.Logger, metrics *Metrics) *Middleware {
	return &Middleware{
		log:     logger,
		metrics: metrics,
		tracer:  otel.Tracer("veloz.http"),
	}
}

// Mount registers the handler on the mux with the full chain applied and the
// route template stored in the context for low-cardinality labels.
func (m *Middleware) Mount(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	wrapped := m.withTrace(m.withRequestLogger(m.withObservability(handler)))
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(contextWithRoute(r.Context(), pattern))
		wrapped.ServeHTTP(w, r)
	})
}

// withTrace creates a server span using W3C propagation from the inbound
// headers.
func (m *Middleware) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := m.tracer.Start(parentCtx,
			routeFromContext(parentCtx),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withRequestLogger generates/echoes X-Request-ID and stores a request-scoped
// logger carrying request and trace identifiers on the context.
func (m *Middleware) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rid := r.Header.Get(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(headerRequestID, rid)

		fields := []zap.Field{zap.String("request_id", rid)}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}

		ctx = logging.ContextWithLogger(ctx, m.log.With(fields...))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withObservability records metrics and writes one access log line after the
// handler completes.
func (m *Middleware) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		route := routeFromContext(r.Context())
		status := strconv.Itoa(lrw.status)
		labels := []string{r.Method, route, status}
		m.metrics.requests.WithLabelValues(labels...).Inc()
		m.metrics.duration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		logging.FromContext(r.Context()).Info("http_access",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.String("path", r.URL.Path),
			zap.Int("status", lrw.status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

type routeKey struct{}

func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
