package httptransport

import (
	"context"
	"errors"
	"net/http"

	apporder "github.com/velozshop/veloz/internal/application/order"
	"github.com/velozshop/veloz/internal/domain/inventory"
	"github.com/velozshop/veloz/internal/domain/order"
)

// OrderService is the handler's view of the order orchestrator.
type OrderService interface {
	CreateOrder(ctx context.Context, input apporder.CreateOrderInput) (*apporder.CreateOrderResult, error)
	Get(ctx context.Context, id int64) (*order.Order, error)
	List(ctx context.Context) ([]*order.Order, error)
}

type OrderHandler struct {
	svc     OrderService
	mw      *Middleware
	service string
}

func NewOrderHandler(svc OrderService, mw *Middleware, service string) *OrderHandler {
	return &OrderHandler{svc: svc, mw: mw, service: service}
}

func (h *OrderHandler) Router() http.Handler {
	mux := http.NewServeMux()
	h.mw.Mount(mux, "GET /health", h.handleHealth)
	h.mw.Mount(mux, "GET /orders", h.handleList)
	h.mw.Mount(mux, "POST /orders", h.handleCreate)
	h.mw.Mount(mux, "GET /orders/{id}", h.handleGet)
	return mux
}

func (h *OrderHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, h.service)
}

type createOrderRequest struct {
	Customer string `json:"customer"`
	Items    []struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	} `json:"items"`
}

func (h *OrderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := apporder.CreateOrderInput{Customer: req.Customer}
	for _, it := range req.Items {
		input.Items = append(input.Items, apporder.LineInput{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	result, err := h.svc.CreateOrder(r.Context(), input)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	// The order row exists either way; only the payment channel outcome
	// decides between full and partial success.
	if result.PaymentErr != nil {
		writeJSON(w, http.StatusMultiStatus, map[string]any{
			"order":   result.Order,
			"warning": "order created, but payment processing failed",
			"detail":  result.PaymentErr.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"order":   result.Order,
		"payment": result.Payment,
	})
}

func (h *OrderHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// writeWorkflowError maps pre-persistence workflow failures; by this point no
// order row exists.
func (h *OrderHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.Is(err, order.ErrCustomerRequired), errors.Is(err, order.ErrItemsRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     err.Error(),
			"available": stockErr.Available,
		})
	case errors.Is(err, apporder.ErrInventoryUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":  "inventory service unavailable",
			"detail": err.Error(),
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
