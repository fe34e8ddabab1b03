package teams

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TeamRepository интерфейс репозитория бригад
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	GetAll(ctx context.Context) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	ReplaceEmployees(ctx context.Context, teamID int64, employeeIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeRepository интерфейс репозитория сотрудников (для валидации состава)
type EmployeeRepository interface {
	GetExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// AuthServiceClient интерфейс клиента для AuthService
type AuthServiceClient interface {
	HasStaffPermission(ctx context.Context, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
