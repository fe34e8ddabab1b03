package manage_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPermissionDenied   = "операция доступна только персоналу"
	msgNotFound           = "услуга не найдена"
	msgInvalidInput       = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /services", userID, err)
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/services
// Каталог услуг доступен всем аутентифицированным пользователям
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/services/{serviceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), userID, serviceID); err != nil {
		h.respondServiceError(w, "DELETE /services/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted successfully: service_id=%d, user_id=%d", serviceID, userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, userID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: user_id=%d", op, userID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrPermissionDenied):
		h.logger.Warn("%s - Permission denied: user_id=%d", op, userID)
		handlers.RespondForbidden(w, msgPermissionDenied)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", op, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Unexpected error: user_id=%d, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
	}
}
