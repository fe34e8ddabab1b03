package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-ReservationService/internal/service/employees/models"
)

// Service сервис управления сотрудниками. Все операции доступны только персоналу.
type Service struct {
	employeeRepo EmployeeRepository
	authClient   AuthServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	employeeRepo EmployeeRepository,
	authClient AuthServiceClient,
	logger Logger,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		authClient:   authClient,
		logger:       logger,
	}
}

// Create создает нового сотрудника
func (s *Service) Create(ctx context.Context, callerID int64, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("Create: creating employee by caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	employee, err := toDomainEmployee(req.FirstName, req.LastName, req.Job)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created employee id=%d", created.ID)
	return models.FromDomainEmployee(created), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, callerID int64, id int64) (*models.EmployeeResponse, error) {
	s.logger.Info("GetByID: fetching employee id=%d for caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetByID: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetByID: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployee(employee), nil
}

// List получает всех сотрудников
func (s *Service) List(ctx context.Context, callerID int64) (*models.EmployeeListResponse, error) {
	s.logger.Info("List: fetching all employees for caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployeeList(employees), nil
}

// Update обновляет данные сотрудника
func (s *Service) Update(ctx context.Context, callerID int64, id int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("Update: updating employee id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	employee, err := toDomainEmployee(req.FirstName, req.LastName, req.Job)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	employee.ID = id

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("Update: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Update: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated employee id=%d", id)
	return models.FromDomainEmployee(employee), nil
}

// Delete удаляет сотрудника
func (s *Service) Delete(ctx context.Context, callerID int64, id int64) error {
	s.logger.Info("Delete: deleting employee id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("Delete: employee id=%d not found", id)
			return ErrEmployeeNotFound
		}
		s.logger.Error("Delete: repository error for employee id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted employee id=%d", id)
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

func toDomainEmployee(firstName, lastName, job string) (*domain.Employee, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if len(firstName) > domain.MaxNameLength || len(lastName) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	role := domain.JobRole(job)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown job role %q", ErrInvalidInput, job)
	}

	return &domain.Employee{
		FirstName: firstName,
		LastName:  lastName,
		Job:       role,
	}, nil
}
