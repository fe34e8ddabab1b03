package manage_customers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/customers"
	"github.com/m04kA/SMC-ReservationService/internal/service/customers/models"
)

const (
	msgInvalidCustomerID  = "некорректный ID заказчика"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPermissionDenied   = "операция доступна только персоналу"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "заказчик не найден"
	msgEmailTaken         = "email уже используется другим заказчиком"
	msgInvalidInput       = "некорректные данные заказчика"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/customers
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /customers", userID, err)
		return
	}

	h.logger.Info("POST /customers - Customer created successfully: customer_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/customers
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /customers", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/customers/{customerId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	customerID, ok := h.parseCustomerID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), userID, customerID)
	if err != nil {
		h.respondServiceError(w, "GET /customers/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/customers/{customerId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	customerID, ok := h.parseCustomerID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /customers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), userID, customerID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /customers/{id}", userID, err)
		return
	}

	h.logger.Info("PUT /customers/{id} - Customer updated successfully: customer_id=%d, user_id=%d", customerID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/customers/{customerId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	customerID, ok := h.parseCustomerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, customerID); err != nil {
		h.respondServiceError(w, "DELETE /customers/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /customers/{id} - Customer deleted successfully: customer_id=%d, user_id=%d", customerID, userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseCustomerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	customerID, err := strconv.ParseInt(mux.Vars(r)["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return 0, false
	}
	return customerID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, userID int64, err error) {
	switch {
	case errors.Is(err, customers.ErrCustomerNotFound):
		h.logger.Warn("%s - Customer not found: user_id=%d", op, userID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, customers.ErrPermissionDenied):
		h.logger.Warn("%s - Permission denied: user_id=%d", op, userID)
		handlers.RespondForbidden(w, msgPermissionDenied)

	case errors.Is(err, customers.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", op, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, customers.ErrEmailTaken):
		h.logger.Warn("%s - Email already taken: user_id=%d", op, userID)
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, customers.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", op, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Unexpected error: user_id=%d, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
	}
}
