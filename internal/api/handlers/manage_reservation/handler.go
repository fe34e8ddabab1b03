package manage_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	manageReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/manage_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgPermissionDenied     = "операция доступна только персоналу"
	msgReservationNotFound  = "заявка не найдена"
	msgCustomerNotFound     = "заказчик не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgTeamNotFound         = "бригада не найдена"
	msgInvalidInput         = "некорректные данные заявки"
)

type Handler struct {
	useCase ManageReservationUseCase
	logger  Logger
}

func NewHandler(useCase ManageReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse target date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, manageReservation.ErrPermissionDenied):
			h.logger.Warn("PUT /reservations/{id} - Permission denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		case errors.Is(err, manageReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, manageReservation.ErrCustomerNotFound):
			h.logger.Warn("PUT /reservations/{id} - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, manageReservation.ErrServiceNotFound):
			h.logger.Warn("PUT /reservations/{id} - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, manageReservation.ErrTeamNotFound):
			h.logger.Warn("PUT /reservations/{id} - Team not found: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, manageReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
