// Package gateway routes external traffic to the backend services unchanged.
// The URL map is an injected config resolved at startup; there is no
// process-wide mutable registry.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/velozshop/veloz/internal/pkg/logging"
)

type Config struct {
	OrdersURL     string
	PaymentsURL   string
	InventoryURL  string
	ProxyTimeout  time.Duration
	HealthTimeout time.Duration
}

type backend struct {
	name  string
	base  *url.URL
	proxy *httputil.ReverseProxy
}

type Gateway struct {
	log      *zap.Logger
	backends []*backend
	byPrefix map[string]*backend
	health   *http.Client
}

func New(cfg Config, logger *zap.Logger) (*Gateway, error) {
	g := &Gateway{
		log:      logger,
		byPrefix: make(map[string]*backend),
		health:   &http.Client{Timeout: cfg.HealthTimeout},
	}

	routes := []struct {
		name   string
		prefix string
		target string
	}{
		{"orders", "/orders", cfg.OrdersURL},
		{"payments", "/payments", cfg.PaymentsURL},
		{"inventory", "/items", cfg.InventoryURL},
	}

	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: cfg.ProxyTimeout}).DialContext,
		ResponseHeaderTimeout: cfg.ProxyTimeout,
	}

	for _, r := range routes {
		base, err := url.Parse(r.target)
		if err != nil {
			return nil, fmt.Errorf("gateway: parse %s url: %w", r.name, err)
		}

		b := &backend{name: r.name, base: base}
		proxy := httputil.NewSingleHostReverseProxy(base)
		proxy.Transport = transport
		proxy.ErrorHandler = g.proxyError(b)
		b.proxy = proxy

		g.backends = append(g.backends, b)
		g.byPrefix[r.prefix] = b
	}

	return g, nil
}

// Mounter registers a route with whatever middleware chain the caller uses.
type Mounter interface {
	Mount(mux *http.ServeMux, pattern string, handler http.HandlerFunc)
}

func (g *Gateway) Router(mw Mounter) http.Handler {
	mux := http.NewServeMux()

	for prefix, b := range g.byPrefix {
		// Register both forms so POSTs to the bare prefix are proxied
		// instead of redirected.
		mw.Mount(mux, prefix, b.proxy.ServeHTTP)
		mw.Mount(mux, prefix+"/", b.proxy.ServeHTTP)
	}

	mw.Mount(mux, "GET /health", g.handleHealth)
	mw.Mount(mux, "GET /{$}", g.handleIndex)

	return mux
}

func (g *Gateway) proxyError(b *backend) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logging.FromContext(r.Context()).Error("proxy_error",
			zap.String("backend", b.name),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"error":%q,"details":%q}`,
			"service '"+b.name+"' unavailable or connection error", err.Error())
	}
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	statuses := make(map[string]string, len(g.backends))
	allHealthy := true

	for _, b := range g.backends {
		statuses[b.name] = g.probe(r.Context(), b)
		if statuses[b.name] != "healthy" {
			allHealthy = false
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !allHealthy {
		status = "degraded"
		code = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   status,
		"service":  "api-gateway",
		"backends": statuses,
	})
}

func (g *Gateway) probe(ctx context.Context, b *backend) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.base.String()+"/health", nil)
	if err != nil {
		return "unreachable"
	}
	resp, err := g.health.Do(req)
	if err != nil {
		return "unreachable"
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return "healthy"
	}
	return "unhealthy"
}

func (g *Gateway) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"service":"veloz api-gateway","endpoints":["/orders","/payments","/items","/health"]}`)
}
