package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	teamRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/team"
	"github.com/m04kA/SMC-ReservationService/internal/service/teams/models"
)

// Service сервис управления бригадами. Все операции доступны только персоналу.
type Service struct {
	teamRepo     TeamRepository
	employeeRepo EmployeeRepository
	authClient   AuthServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бригад
func NewService(
	teamRepo TeamRepository,
	employeeRepo EmployeeRepository,
	authClient AuthServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		teamRepo:     teamRepo,
		employeeRepo: employeeRepo,
		authClient:   authClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает новую бригаду с указанным составом сотрудников.
// Создание записи и назначение состава выполняются в одной транзакции.
func (s *Service) Create(ctx context.Context, callerID int64, req *models.CreateTeamRequest) (*models.TeamResponse, error) {
	s.logger.Info("Create: creating team by caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	name, err := validateTeamName(req.Name)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.validateEmployeeIDs(ctx, req.EmployeeIDs); err != nil {
		s.logger.Warn("Create: employee validation failed: %v", err)
		return nil, err
	}

	team := &domain.Team{Name: name, EmployeeIDs: req.EmployeeIDs}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.teamRepo.Create(txCtx, team)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if err := s.teamRepo.ReplaceEmployees(txCtx, created.ID, req.EmployeeIDs); err != nil {
			return fmt.Errorf("%w: Create - replace employees: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Create: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created team id=%d with %d employees", team.ID, len(req.EmployeeIDs))
	return models.FromDomainTeam(team), nil
}

// GetByID получает бригаду по ID
func (s *Service) GetByID(ctx context.Context, callerID int64, id int64) (*models.TeamResponse, error) {
	s.logger.Info("GetByID: fetching team id=%d for caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			s.logger.Warn("GetByID: team id=%d not found", id)
			return nil, ErrTeamNotFound
		}
		s.logger.Error("GetByID: repository error for team id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTeam(team), nil
}

// List получает все бригады
func (s *Service) List(ctx context.Context, callerID int64) (*models.TeamListResponse, error) {
	s.logger.Info("List: fetching all teams for caller=%d", callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTeamList(teams), nil
}

// Update обновляет название бригады и заменяет состав сотрудников целиком
func (s *Service) Update(ctx context.Context, callerID int64, id int64, req *models.UpdateTeamRequest) (*models.TeamResponse, error) {
	s.logger.Info("Update: updating team id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return nil, err
	}

	name, err := validateTeamName(req.Name)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.validateEmployeeIDs(ctx, req.EmployeeIDs); err != nil {
		s.logger.Warn("Update: employee validation failed: %v", err)
		return nil, err
	}

	team := &domain.Team{ID: id, Name: name, EmployeeIDs: req.EmployeeIDs}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.teamRepo.Update(txCtx, team); err != nil {
			if errors.Is(err, teamRepo.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := s.teamRepo.ReplaceEmployees(txCtx, id, req.EmployeeIDs); err != nil {
			return fmt.Errorf("%w: Update - replace employees: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			s.logger.Warn("Update: team id=%d not found", id)
		} else {
			s.logger.Error("Update: transaction failed: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated team id=%d", id)
	return models.FromDomainTeam(team), nil
}

// Delete удаляет бригаду
func (s *Service) Delete(ctx context.Context, callerID int64, id int64) error {
	s.logger.Info("Delete: deleting team id=%d by caller=%d", id, callerID)

	if err := s.checkStaffAccess(ctx, callerID); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			s.logger.Warn("Delete: team id=%d not found", id)
			return ErrTeamNotFound
		}
		s.logger.Error("Delete: repository error for team id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted team id=%d", id)
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

// validateEmployeeIDs проверяет, что все ссылки на сотрудников разрешимы
func (s *Service) validateEmployeeIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := s.employeeRepo.GetExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: validateEmployeeIDs - repository error: %v", ErrInternal, err)
	}

	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := existingSet[id]; !ok {
			return fmt.Errorf("%w: employee id=%d", ErrEmployeeNotFound, id)
		}
	}

	return nil
}

func validateTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: team name is too long", ErrInvalidInput)
	}
	return name, nil
}
