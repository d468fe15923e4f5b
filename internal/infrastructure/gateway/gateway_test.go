package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/velozshop/veloz/internal/infrastructure/http"
)

func backendStub(t *testing.T, name string, healthy bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			if !healthy {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"backend": name,
			"path":    r.URL.Path,
			"method":  r.Method,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, orders, payments, inventory string) http.Handler {
	t.Helper()
	g, err := New(Config{
		OrdersURL:     orders,
		PaymentsURL:   payments,
		InventoryURL:  inventory,
		ProxyTimeout:  2 * time.Second,
		HealthTimeout: time.Second,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	mw := httptransport.NewMiddleware(zap.NewNop(), httptransport.NewMetrics(prometheus.NewRegistry()))
	return g.Router(mw)
}

func TestRoutesToBackends(t *testing.T) {
	orders := backendStub(t, "orders", true)
	payments := backendStub(t, "payments", true)
	inventory := backendStub(t, "inventory", true)
	router := newTestGateway(t, orders.URL, payments.URL, inventory.URL)

	tests := []struct {
		method  string
		path    string
		backend string
	}{
		{http.MethodPost, "/orders", "orders"},
		{http.MethodGet, "/orders/1", "orders"},
		{http.MethodPost, "/payments", "payments"},
		{http.MethodGet, "/payments/3", "payments"},
		{http.MethodGet, "/items", "inventory"},
		{http.MethodPatch, "/items/1/reserve", "inventory"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", tt.method, tt.path, rec.Code)
		}
		var body struct {
			Backend string `json:"backend"`
			Path    string `json:"path"`
			Method  string `json:"method"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s %s: decode body: %v", tt.method, tt.path, err)
		}
		if body.Backend != tt.backend {
			t.Errorf("%s %s: routed to %q, expected %q", tt.method, tt.path, body.Backend, tt.backend)
		}
		if body.Path != tt.path {
			t.Errorf("%s %s: forwarded path %q", tt.method, tt.path, body.Path)
		}
		if body.Method != tt.method {
			t.Errorf("%s %s: forwarded method %q", tt.method, tt.path, body.Method)
		}
	}
}

func TestProxyErrorReturns503(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()
	payments := backendStub(t, "payments", true)
	inventory := backendStub(t, "inventory", true)
	router := newTestGateway(t, down.URL, payments.URL, inventory.URL)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "orders") {
		t.Errorf("expected backend name in error, got %s", rec.Body.String())
	}
}

func TestHealthAggregation(t *testing.T) {
	tests := []struct {
		name            string
		ordersHealthy   bool
		expectedStatus  int
		expectedOverall string
	}{
		{"all healthy", true, http.StatusOK, "healthy"},
		{"one unhealthy", false, http.StatusMultiStatus, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := backendStub(t, "orders", tt.ordersHealthy)
			payments := backendStub(t, "payments", true)
			inventory := backendStub(t, "inventory", true)
			router := newTestGateway(t, orders.URL, payments.URL, inventory.URL)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, rec.Code)
			}

			var body struct {
				Status   string            `json:"status"`
				Backends map[string]string `json:"backends"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != tt.expectedOverall {
				t.Errorf("expected overall %q, got %q", tt.expectedOverall, body.Status)
			}
			if len(body.Backends) != 3 {
				t.Errorf("expected 3 backends, got %v", body.Backends)
			}
		})
	}
}

func TestHealthUnreachableBackend(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()
	payments := backendStub(t, "payments", true)
	inventory := backendStub(t, "inventory", true)
	router := newTestGateway(t, down.URL, payments.URL, inventory.URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unreachable") {
		t.Errorf("expected unreachable backend status, got %s", rec.Body.String())
	}
}

func TestIndex(t *testing.T) {
	orders := backendStub(t, "orders", true)
	payments := backendStub(t, "payments", true)
	inventory := backendStub(t, "inventory", true)
	router := newTestGateway(t, orders.URL, payments.URL, inventory.URL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/orders") {
		t.Errorf("expected endpoint listing, got %s", rec.Body.String())
	}
}
