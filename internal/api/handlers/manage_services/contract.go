package manage_services

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, callerID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	List(ctx context.Context) (*models.ServiceListResponse, error)
	Delete(ctx context.Context, callerID int64, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
