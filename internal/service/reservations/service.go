package reservations

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Service сервис для чтения и удаления бронирований.
// Создание и управление жизненным циклом вынесены в отдельные use cases.
type Service struct {
	reservationRepo ReservationRepository
	authClient      AuthServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	authClient AuthServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		authClient:      authClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Заказчик может видеть только своё бронирование; персонал - любое.
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for caller=%d", id, callerID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if reservation.CustomerID != callerID {
		isStaff, err := s.authClient.HasStaffPermission(ctx, callerID)
		if err != nil {
			s.logger.Error("GetByID: failed to check staff permission for caller=%d: %v", callerID, err)
			return nil, fmt.Errorf("%w: GetByID - permission check: %v", ErrInternal, err)
		}
		if !isStaff {
			s.logger.Warn("GetByID: access denied for caller=%d to reservation id=%d", callerID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainReservation(reservation), nil
}

// GetCustomerReservations получает бронирования заказчика, разделенные на
// ожидающие принятия и принятые. Заказчик может запрашивать только свой список.
func (s *Service) GetCustomerReservations(ctx context.Context, customerID int64, callerID int64) (*models.PartitionedReservationsResponse, error) {
	s.logger.Info("GetCustomerReservations: customer=%d, caller=%d", customerID, callerID)

	if customerID != callerID {
		s.logger.Warn("GetCustomerReservations: caller=%d requested reservations of customer=%d", callerID, customerID)
		return nil, ErrAccessDenied
	}

	pending, err := s.reservationRepo.GetByCustomerID(ctx, customerID, ptr.Ptr(false))
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	accepted, err := s.reservationRepo.GetByCustomerID(ctx, customerID, ptr.Ptr(true))
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerReservations: customer=%d has %d pending, %d accepted",
		customerID, len(pending), len(accepted))
	return models.NewPartitionedResponse(pending, accepted), nil
}

// GetAllReservations получает все бронирования, разделенные на ожидающие
// принятия и принятые. Доступно только персоналу.
func (s *Service) GetAllReservations(ctx context.Context, callerID int64) (*models.PartitionedReservationsResponse, error) {
	s.logger.Info("GetAllReservations: caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	pending, err := s.reservationRepo.GetAll(ctx, ptr.Ptr(false))
	if err != nil {
		s.logger.Error("GetAllReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllReservations - repository error: %v", ErrInternal, err)
	}

	accepted, err := s.reservationRepo.GetAll(ctx, ptr.Ptr(true))
	if err != nil {
		s.logger.Error("GetAllReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllReservations: %d pending, %d accepted", len(pending), len(accepted))
	return models.NewPartitionedResponse(pending, accepted), nil
}

// Delete удаляет бронирование. Доступно только персоналу.
func (s *Service) Delete(ctx context.Context, id int64, callerID int64) error {
	s.logger.Info("Delete: deleting reservation id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

// checkStaffAccess проверяет, что вызывающий обладает правами персонала
func (s *Service) checkStaffAccess(ctx context.Context, callerID int64) error {
	isStaff, err := s.authClient.HasStaffPermission(ctx, callerID)
	if err != nil {
		s.logger.Error("checkStaffAccess: failed to check permission for caller=%d: %v", callerID, err)
		return fmt.Errorf("%w: checkStaffAccess - permission check: %v", ErrInternal, err)
	}
	if !isStaff {
		s.logger.Warn("checkStaffAccess: caller=%d lacks staff permission", callerID)
		return ErrPermissionDenied
	}
	return nil
}
