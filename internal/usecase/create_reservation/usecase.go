package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

// UseCase use case для создания заявки на выполнение работ.
// Заявка создается от имени вызывающего и всегда попадает в очередь
// неподтвержденных - подтверждением занимается персонал.
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

// Execute выполняет use case создания заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, service=%d, date=%s",
		req.CustomerID, req.ServiceID, req.TargetDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что услуга существует в каталоге
	if _, err := uc.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Создаем заявку: неподтвержденная, без назначенных бригад.
	// Занятость даты не проверяется - персонал решает при подтверждении.
	reservation := &domain.Reservation{
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		TargetDate: req.TargetDate,
		Comment:    normalizeComment(req.Comment),
		IsAccepted: false,
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	return &Response{
		ID:         created.ID,
		CustomerID: created.CustomerID,
		ServiceID:  created.ServiceID,
		TargetDate: created.TargetDate.Format(domain.DateFormat),
		Comment:    created.Comment,
		IsAccepted: created.IsAccepted,
		TeamIDs:    created.TeamIDs,
		CreatedAt:  created.CreatedAt,
		UpdatedAt:  created.UpdatedAt,
	}, nil
}
