package manage_employees

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/employees"
	"github.com/m04kA/SMC-ReservationService/internal/service/employees/models"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPermissionDenied   = "операция доступна только персоналу"
	msgNotFound           = "сотрудник не найден"
	msgInvalidInput       = "некорректные данные сотрудника"
)

type Handler struct {
	service EmployeeService
	logger  Logger
}

func NewHandler(service EmployeeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/employees
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /employees", userID, err)
		return
	}

	h.logger.Info("POST /employees - Employee created successfully: employee_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/employees/{employeeId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	employeeID, ok := h.parseEmployeeID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), userID, employeeID)
	if err != nil {
		h.respondServiceError(w, "GET /employees/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/employees
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /employees", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/employees/{employeeId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	employeeID, ok := h.parseEmployeeID(w, r)
	if !ok {
		return
	}

	var req models.UpdateEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), userID, employeeID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /employees/{id}", userID, err)
		return
	}

	h.logger.Info("PUT /employees/{id} - Employee updated successfully: employee_id=%d, user_id=%d", employeeID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/employees/{employeeId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	employeeID, ok := h.parseEmployeeID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, employeeID); err != nil {
		h.respondServiceError(w, "DELETE /employees/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /employees/{id} - Employee deleted successfully: employee_id=%d, user_id=%d", employeeID, userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseEmployeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return 0, false
	}
	return employeeID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, userID int64, err error) {
	switch {
	case errors.Is(err, employees.ErrEmployeeNotFound):
		h.logger.Warn("%s - Employee not found: user_id=%d", op, userID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, employees.ErrPermissionDenied):
		h.logger.Warn("%s - Permission denied: user_id=%d", op, userID)
		handlers.RespondForbidden(w, msgPermissionDenied)

	case errors.Is(err, employees.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", op, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Unexpected error: user_id=%d, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
	}
}
