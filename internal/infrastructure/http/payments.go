package httptransport

import (
	"context"
	"errors"
	"net/http"

	apppayment "github.com/velozshop/veloz/internal/application/payment"
	"github.com/velozshop/veloz/internal/domain/payment"
)

// PaymentService is the handler's view of the payment application layer.
type PaymentService interface {
	Charge(ctx context.Context, input apppayment.ChargeInput) (*payment.Payment, error)
	Get(ctx context.Context, id int64) (*payment.Payment, error)
	List(ctx context.Context) ([]*payment.Payment, error)
}

type PaymentHandler struct {
	svc     PaymentService
	mw      *Middleware
	service string
}

func NewPaymentHandler(svc PaymentService, mw *Middleware, service string) *PaymentHandler {
	return &PaymentHandler{svc: svc, mw: mw, service: service}
}

func (h *PaymentHandler) Router() http.Handler {
	mux := http.NewServeMux()
	h.mw.Mount(mux, "GET /health", h.handleHealth)
	h.mw.Mount(mux, "GET /payments", h.handleList)
	h.mw.Mount(mux, "POST /payments", h.handleCharge)
	h.mw.Mount(mux, "GET /payments/{id}", h.handleGet)
	return mux
}

func (h *PaymentHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, h.service)
}

type chargeRequest struct {
	OrderID int64   `json:"order_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
}

func (h *PaymentHandler) handleCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Charge(r.Context(), apppayment.ChargeInput{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	// 201 approved, 422 declined: both carry the persisted record.
	status := http.StatusCreated
	if p.Status == payment.StatusDeclined {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, p)
}

func (h *PaymentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.List(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payment.ErrNotFound):
		writeError(w, http.StatusNotFound, "payment not found")
	case errors.Is(err, payment.ErrOrderRequired), errors.Is(err, payment.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
