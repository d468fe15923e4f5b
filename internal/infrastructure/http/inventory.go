package httptransport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	appinventory "github.com/velozshop/veloz/internal/application/inventory"
	"github.com/velozshop/veloz/internal/domain/inventory"
)

// InventoryService is the handler's view of the inventory application layer.
type InventoryService interface {
	Create(ctx context.Context, input appinventory.CreateItemInput) (*inventory.Item, error)
	Get(ctx context.Context, id int64) (*inventory.Item, error)
	List(ctx context.Context) ([]*inventory.Item, error)
	Reserve(ctx context.Context, id int64, quantity int) (*inventory.Item, error)
	WriteOff(ctx context.Context, id int64) (*inventory.Item, error)
}

type InventoryHandler struct {
	svc     InventoryService
	mw      *Middleware
	service string
}

func NewInventoryHandler(svc InventoryService, mw *Middleware, service string) *InventoryHandler {
	return &InventoryHandler{svc: svc, mw: mw, service: service}
}

func (h *InventoryHandler) Router() http.Handler {
	mux := http.NewServeMux()
	h.mw.Mount(mux, "GET /health", h.handleHealth)
	h.mw.Mount(mux, "GET /items", h.handleList)
	h.mw.Mount(mux, "POST /items", h.handleCreate)
	h.mw.Mount(mux, "GET /items/{id}", h.handleGet)
	h.mw.Mount(mux, "PATCH /items/{id}/reserve", h.handleReserve)
	h.mw.Mount(mux, "PATCH /items/{id}/write-off", h.handleWriteOff)
	return mux
}

func (h *InventoryHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, h.service)
}

func (h *InventoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type createItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *InventoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Create(r.Context(), appinventory.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *InventoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type reserveItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *InventoryHandler) handleReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req reserveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.svc.Reserve(r.Context(), id, req.Quantity)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "stock reserved",
		"item":    item,
	})
}

func (h *InventoryHandler) handleWriteOff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.WriteOff(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "write-off confirmed",
		"item":    item,
	})
}

func (h *InventoryHandler) writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *inventory.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "insufficient stock",
			"available": stockErr.Available,
		})
	case errors.Is(err, inventory.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, inventory.ErrNameRequired),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
