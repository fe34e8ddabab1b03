package models

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модели

// CreateEmployeeRequest запрос на создание сотрудника
type CreateEmployeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Job       string `json:"job"` // "chief" | "handyman"
}

// UpdateEmployeeRequest запрос на обновление данных сотрудника
type UpdateEmployeeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Job       string `json:"job"`
}

// Response модели

// EmployeeResponse ответ с данными сотрудника
type EmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Job       string `json:"job"`
}

// EmployeeListResponse ответ со списком сотрудников
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// FromDomainEmployee конвертирует domain модель в DTO
func FromDomainEmployee(e *domain.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	return &EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Job:       string(e.Job),
	}
}

// FromDomainEmployeeList конвертирует список domain моделей в DTO
func FromDomainEmployeeList(employees []*domain.Employee) *EmployeeListResponse {
	resp := &EmployeeListResponse{
		Employees: make([]EmployeeResponse, 0, len(employees)),
	}
	for _, e := range employees {
		if er := FromDomainEmployee(e); er != nil {
			resp.Employees = append(resp.Employees, *er)
		}
	}
	return resp
}
