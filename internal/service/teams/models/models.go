package models

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модели

// CreateTeamRequest запрос на создание бригады
type CreateTeamRequest struct {
	Name        string  `json:"name"`
	EmployeeIDs []int64 `json:"employeeIds"`
}

// UpdateTeamRequest запрос на обновление бригады.
// Состав сотрудников заменяется целиком.
type UpdateTeamRequest struct {
	Name        string  `json:"name"`
	EmployeeIDs []int64 `json:"employeeIds"`
}

// Response модели

// TeamResponse ответ с данными бригады
type TeamResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	EmployeeIDs []int64 `json:"employeeIds"`
}

// TeamListResponse ответ со списком бригад
type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// FromDomainTeam конвертирует domain модель в DTO
func FromDomainTeam(t *domain.Team) *TeamResponse {
	if t == nil {
		return nil
	}

	employeeIDs := t.EmployeeIDs
	if employeeIDs == nil {
		employeeIDs = []int64{}
	}

	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		EmployeeIDs: employeeIDs,
	}
}

// FromDomainTeamList конвертирует список domain моделей в DTO
func FromDomainTeamList(teams []*domain.Team) *TeamListResponse {
	resp := &TeamListResponse{
		Teams: make([]TeamResponse, 0, len(teams)),
	}
	for _, t := range teams {
		if tr := FromDomainTeam(t); tr != nil {
			resp.Teams = append(resp.Teams, *tr)
		}
	}
	return resp
}
