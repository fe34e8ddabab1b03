package reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetAll(ctx context.Context, isAccepted *bool) ([]*domain.Reservation, error)
	GetByCustomerID(ctx context.Context, customerID int64, isAccepted *bool) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// AuthServiceClient интерфейс клиента для AuthService
type AuthServiceClient interface {
	HasStaffPermission(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
