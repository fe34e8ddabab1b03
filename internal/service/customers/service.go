package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-ReservationService/internal/service/customers/models"
)

// Service сервис управления заказчиками.
// Заказчик работает только со своим профилем, персонал - с любыми.
type Service struct {
	customerRepo CustomerRepository
	authClient   AuthServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказчиков
func NewService(
	customerRepo CustomerRepository,
	authClient AuthServiceClient,
	logger Logger,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		authClient:   authClient,
		logger:       logger,
	}
}

// Create создает нового заказчика (только для персонала).
// Заказчики заводятся персоналом, self-signup не поддерживается.
func (s *Service) Create(ctx context.Context, callerID int64, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Create: creating customer by caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	customer, err := toDomainCustomer(req.FirstName, req.LastName, req.Email, req.Phone, req.City, req.Street, req.Postcode)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// Проверяем, что email еще не занят
	existing, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		s.logger.Error("Create: failed to check email uniqueness: %v", err)
		return nil, fmt.Errorf("%w: Create - email check: %v", ErrInternal, err)
	}
	if existing != nil {
		s.logger.Warn("Create: email %s already taken by customer id=%d", customer.Email, existing.ID)
		return nil, ErrEmailTaken
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, customerRepo.ErrDuplicateEmail) {
			s.logger.Warn("Create: email %s already in use", customer.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created customer id=%d", created.ID)
	return models.FromDomainCustomer(created), nil
}

// List получает всех заказчиков (только для персонала)
func (s *Service) List(ctx context.Context, callerID int64) (*models.CustomerListResponse, error) {
	s.logger.Info("List: fetching customers by caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomerList(customers), nil
}

// GetByID получает заказчика по ID.
// Заказчик видит только собственный профиль, персонал - любой.
func (s *Service) GetByID(ctx context.Context, callerID int64, id int64) (*models.CustomerResponse, error) {
	s.logger.Info("GetByID: fetching customer id=%d by caller=%d", id, callerID)

	if callerID != id {
		isStaff, err := s.authClient.HasStaffPermission(ctx, callerID)
		if err != nil {
			s.logger.Error("GetByID: failed to check permission for caller=%d: %v", callerID, err)
			return nil, fmt.Errorf("%w: GetByID - permission check: %v", ErrInternal, err)
		}
		if !isStaff {
			s.logger.Warn("GetByID: caller=%d denied access to customer id=%d", callerID, id)
			return nil, ErrAccessDenied
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer), nil
}

// Update обновляет контактные данные заказчика.
// Заказчик обновляет только собственный профиль, персонал - любой.
func (s *Service) Update(ctx context.Context, callerID int64, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Update: updating customer id=%d by caller=%d", id, callerID)

	if callerID != id {
		isStaff, err := s.authClient.HasStaffPermission(ctx, callerID)
		if err != nil {
			s.logger.Error("Update: failed to check permission for caller=%d: %v", callerID, err)
			return nil, fmt.Errorf("%w: Update - permission check: %v", ErrInternal, err)
		}
		if !isStaff {
			s.logger.Warn("Update: caller=%d denied access to customer id=%d", callerID, id)
			return nil, ErrAccessDenied
		}
	}

	customer, err := toDomainCustomer(req.FirstName, req.LastName, req.Email, req.Phone, req.City, req.Street, req.Postcode)
	if err != nil {
		s.logger.Warn("Update: validation failed for customer id=%d: %v", id, err)
		return nil, err
	}
	customer.ID = id

	// Проверяем, что email не занят другим заказчиком
	existing, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		s.logger.Error("Update: failed to check email uniqueness: %v", err)
		return nil, fmt.Errorf("%w: Update - email check: %v", ErrInternal, err)
	}
	if existing != nil && existing.ID != id {
		s.logger.Warn("Update: email %s already taken by customer id=%d", customer.Email, existing.ID)
		return nil, ErrEmailTaken
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		switch {
		case errors.Is(err, customerRepo.ErrCustomerNotFound):
			s.logger.Warn("Update: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		case errors.Is(err, customerRepo.ErrDuplicateEmail):
			s.logger.Warn("Update: email %s already in use", customer.Email)
			return nil, ErrEmailTaken
		default:
			s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to fetch updated customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - fetch updated: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated customer id=%d", id)
	return models.FromDomainCustomer(updated), nil
}

// Delete удаляет заказчика (только для персонала)
func (s *Service) Delete(ctx context.Context, callerID int64, id int64) error {
	s.logger.Info("Delete: deleting customer id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Delete: customer id=%d not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("Delete: repository error for customer id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted customer id=%d", id)
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

// toDomainCustomer валидирует контактные данные и строит domain модель
func toDomainCustomer(firstName, lastName, email, phone, city, street, postcode string) (*domain.Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if len(firstName) > domain.MaxNameLength || len(lastName) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	return &domain.Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
		City:      strings.TrimSpace(city),
		Street:    strings.TrimSpace(street),
		Postcode:  strings.TrimSpace(postcode),
	}, nil
}
