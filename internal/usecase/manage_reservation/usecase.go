package manage_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

// UseCase use case для обновления заявки персоналом.
// Операция замещает состояние заявки целиком: поля заявки и полный
// набор назначенных бригад. Доступна только персоналу.
type UseCase struct {
	reservationRepo ReservationRepository
	customerRepo    CustomerRepository
	serviceRepo     ServiceRepository
	teamRepo        TeamRepository
	authClient      AuthServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	customerRepo CustomerRepository,
	serviceRepo ServiceRepository,
	teamRepo TeamRepository,
	authClient AuthServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		teamRepo:        teamRepo,
		authClient:      authClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case обновления заявки
// Использует сериализуемую транзакцию, чтобы обновление полей и замена
// набора бригад были видны снаружи как единое изменение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ManageReservation: staff=%d, reservation=%d, customer=%d, service=%d, date=%s, accepted=%t, teams=%v",
		req.StaffID, req.ReservationID, req.CustomerID, req.ServiceID,
		req.TargetDate.Format(domain.DateFormat), req.IsAccepted, req.TeamIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ManageReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права персонала
	isStaff, err := uc.authClient.HasStaffPermission(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("ManageReservation: failed to check permission for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: permission check: %v", ErrInternal, err)
	}
	if !isStaff {
		uc.logger.Warn("ManageReservation: caller=%d lacks staff permission", req.StaffID)
		return nil, ErrPermissionDenied
	}

	teamIDs := uniqueTeamIDs(req.TeamIDs)

	// Переменная для хранения результата
	var result *domain.Reservation

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем, что заявка существует
		if _, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ManageReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ManageReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.2. Проверяем, что заказчик существует
		if _, err := uc.customerRepo.GetByID(txCtx, req.CustomerID); err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("ManageReservation: customer id=%d not found", req.CustomerID)
				return ErrCustomerNotFound
			}
			uc.logger.Error("ManageReservation: failed to get customer id=%d: %v", req.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}

		// 3.3. Проверяем, что услуга существует в каталоге
		if _, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("ManageReservation: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("ManageReservation: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// 3.4. Проверяем, что все назначаемые бригады существуют
		if len(teamIDs) > 0 {
			existingIDs, err := uc.teamRepo.GetExistingIDs(txCtx, teamIDs)
			if err != nil {
				uc.logger.Error("ManageReservation: failed to check teams %v: %v", teamIDs, err)
				return fmt.Errorf("%w: failed to check teams: %v", ErrInternal, err)
			}
			if missing := findMissingIDs(teamIDs, existingIDs); len(missing) > 0 {
				uc.logger.Warn("ManageReservation: teams %v not found", missing)
				return fmt.Errorf("%w: teams %v do not exist", ErrTeamNotFound, missing)
			}
		}

		// 3.5. Обновляем поля заявки
		updated := &domain.Reservation{
			ID:         req.ReservationID,
			CustomerID: req.CustomerID,
			ServiceID:  req.ServiceID,
			TargetDate: req.TargetDate,
			Comment:    normalizeComment(req.Comment),
			IsAccepted: req.IsAccepted,
		}

		if err := uc.reservationRepo.Update(txCtx, updated); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("ManageReservation: failed to update reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		// 3.6. Замещаем набор назначенных бригад целиком
		if err := uc.reservationRepo.ReplaceTeams(txCtx, req.ReservationID, teamIDs); err != nil {
			uc.logger.Error("ManageReservation: failed to replace teams for reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to replace teams: %v", ErrInternal, err)
		}

		// 3.7. Перечитываем заявку, чтобы вернуть актуальное состояние
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			uc.logger.Error("ManageReservation: failed to fetch updated reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to fetch updated reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ManageReservation: successfully updated reservation id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		CustomerID: result.CustomerID,
		ServiceID:  result.ServiceID,
		TargetDate: result.TargetDate.Format(domain.DateFormat),
		Comment:    result.Comment,
		IsAccepted: result.IsAccepted,
		TeamIDs:    result.TeamIDs,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
