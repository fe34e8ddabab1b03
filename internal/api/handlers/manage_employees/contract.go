package manage_employees

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/employees/models"
)

type EmployeeService interface {
	Create(ctx context.Context, callerID int64, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error)
	GetByID(ctx context.Context, callerID int64, id int64) (*models.EmployeeResponse, error)
	List(ctx context.Context, callerID int64) (*models.EmployeeListResponse, error)
	Update(ctx context.Context, callerID int64, id int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error)
	Delete(ctx context.Context, callerID int64, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
