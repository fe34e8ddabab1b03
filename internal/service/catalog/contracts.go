package catalog

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetAll(ctx context.Context) ([]*domain.Service, error)
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
