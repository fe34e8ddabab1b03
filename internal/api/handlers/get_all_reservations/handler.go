package get_all_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgPermissionDenied = "операция доступна только персоналу"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetAllReservations(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrPermissionDenied):
			h.logger.Warn("GET /reservations - Permission denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("GET /reservations - Failed to get reservations: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: user_id=%d, pending=%d, accepted=%d",
		userID, len(result.Pending), len(result.Accepted))
	handlers.RespondJSON(w, http.StatusOK, result)
}
