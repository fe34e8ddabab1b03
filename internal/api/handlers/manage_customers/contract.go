package manage_customers

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/customers/models"
)

type CustomerService interface {
	Create(ctx context.Context, callerID int64, req *models.CreateCustomerRequest) (*models.CustomerResponse, error)
	List(ctx context.Context, callerID int64) (*models.CustomerListResponse, error)
	GetByID(ctx context.Context, callerID int64, id int64) (*models.CustomerResponse, error)
	Update(ctx context.Context, callerID int64, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error)
	Delete(ctx context.Context, callerID int64, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
