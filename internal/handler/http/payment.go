package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
)

type PaymentHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
	clock          Clock
}

func NewPaymentHandler(paymentService payment.PaymentService, clock Clock) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService, clock: clock}
}

func (h *paymentHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req payment.UpsertPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.paymentService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment recorded", result)
}

// List returns the month's income rows with their delinquency status.
func (h *paymentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, err := periodQuery(r.URL.Query().Get("month"), r.URL.Query().Get("year"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.paymentService.ListAnnotated(r.Context(), p, h.clock())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
