package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

// Service сервис управления каталогом услуг.
// Чтение каталога доступно всем аутентифицированным пользователям,
// изменение - только персоналу.
type Service struct {
	serviceRepo ServiceRepository
	authClient  AuthServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	authClient AuthServiceClient,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		authClient:  authClient,
		logger:      logger,
	}
}

// Create добавляет услугу в каталог
func (s *Service) Create(ctx context.Context, callerID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service by caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.logger.Warn("Create: empty service name")
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		s.logger.Warn("Create: service name too long")
		return nil, fmt.Errorf("%w: service name is too long", ErrInvalidInput)
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{Name: name})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// List получает все услуги каталога
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching service catalog")

	services, err := s.serviceRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Delete удаляет услугу из каталога
func (s *Service) Delete(ctx context.Context, callerID int64, id int64) error {
	s.logger.Info("Delete: deleting service id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%d", id)
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
