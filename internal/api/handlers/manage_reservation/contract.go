package manage_reservation

import (
	"context"

	manageReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/manage_reservation"
)

type ManageReservationUseCase interface {
	Execute(ctx context.Context, req *manageReservation.Request) (*manageReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
