package manage_teams

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/teams"
	"github.com/m04kA/SMC-ReservationService/internal/service/teams/models"
)

const (
	msgInvalidTeamID      = "некорректный ID бригады"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPermissionDenied   = "операция доступна только персоналу"
	msgTeamNotFound       = "бригада не найдена"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgInvalidInput       = "некорректные данные бригады"
)

type Handler struct {
	service TeamService
	logger  Logger
}

func NewHandler(service TeamService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/teams
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateTeamRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teams - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /teams", userID, err)
		return
	}

	h.logger.Info("POST /teams - Team created successfully: team_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/teams/{teamId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	teamID, ok := h.parseTeamID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), userID, teamID)
	if err != nil {
		h.respondServiceError(w, "GET /teams/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/teams
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /teams", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/teams/{teamId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	teamID, ok := h.parseTeamID(w, r)
	if !ok {
		return
	}

	var req models.UpdateTeamRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /teams/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), userID, teamID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /teams/{id}", userID, err)
		return
	}

	h.logger.Info("PUT /teams/{id} - Team updated successfully: team_id=%d, user_id=%d", teamID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/teams/{teamId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	teamID, ok := h.parseTeamID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, teamID); err != nil {
		h.respondServiceError(w, "DELETE /teams/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /teams/{id} - Team deleted successfully: team_id=%d, user_id=%d", teamID, userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseTeamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	teamID, err := strconv.ParseInt(mux.Vars(r)["teamId"], 10, 64)
	if err != nil {
		h.logger.Warn("Invalid team ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return 0, false
	}
	return teamID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, userID int64, err error) {
	switch {
	case errors.Is(err, teams.ErrTeamNotFound):
		h.logger.Warn("%s - Team not found: user_id=%d", op, userID)
		handlers.RespondNotFound(w, msgTeamNotFound)

	case errors.Is(err, teams.ErrEmployeeNotFound):
		h.logger.Warn("%s - Employee not found: user_id=%d, error=%v", op, userID, err)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, teams.ErrPermissionDenied):
		h.logger.Warn("%s - Permission denied: user_id=%d", op, userID)
		handlers.RespondForbidden(w, msgPermissionDenied)

	case errors.Is(err, teams.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", op, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Unexpected error: user_id=%d, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
	}
}
