package models

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модели

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	Name string `json:"name"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ServiceListResponse ответ со списком услуг каталога
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{ID: s.ID, Name: s.Name}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if sr := FromDomainService(s); sr != nil {
			resp.Services = append(resp.Services, *sr)
		}
	}
	return resp
}
