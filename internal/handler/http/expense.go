package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
	clock          Clock
}

func NewExpenseHandler(expenseService expense.ExpenseService, clock Clock) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService, clock: clock}
}

func (h *expenseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.expenseService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense registered", result)
}

func (h *expenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid expense ID", nil)
		return
	}

	result, err := h.expenseService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := expense.ListExpenseRequest{
		From:     query.Get("from"),
		To:       query.Get("to"),
		Category: query.Get("category"),
	}

	result, err := h.expenseService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *expenseHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid expense ID", nil)
		return
	}

	var req expense.CorrectExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.expenseService.Correct(r.Context(), req, h.clock())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense corrected", result)
}
