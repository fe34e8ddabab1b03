package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

// UseCase use case для справочной проверки занятости даты по услуге
type UseCase struct {
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// Execute выполняет use case проверки занятости даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: service=%d, date=%s",
		req.ServiceID, req.TargetDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что услуга существует в каталоге
	if _, err := uc.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Дата занята, если на нее уже есть хотя бы одна заявка по услуге
	exists, err := uc.reservationRepo.ExistsByDateAndService(ctx, req.TargetDate, req.ServiceID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to check reservations: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: service=%d, date=%s, available=%t",
		req.ServiceID, req.TargetDate.Format(domain.DateFormat), !exists)

	return &Response{
		ServiceID:   req.ServiceID,
		TargetDate:  req.TargetDate.Format(domain.DateFormat),
		IsAvailable: !exists,
	}, nil
}
