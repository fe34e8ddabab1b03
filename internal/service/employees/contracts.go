package employees

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetAll(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
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
