package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CreateCustomerRequest запрос на создание заказчика
type CreateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Postcode  string `json:"postcode"`
}

// UpdateCustomerRequest запрос на обновление контактных данных заказчика
type UpdateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Postcode  string `json:"postcode"`
}

// Response модели

// CustomerResponse ответ с данными заказчика
type CustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Street    string `json:"street"`
	Postcode  string `json:"postcode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerListResponse ответ со списком заказчиков
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// FromDomainCustomer конвертирует domain модель в DTO
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		City:      c.City,
		Street:    c.Street,
		Postcode:  c.Postcode,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainCustomerList конвертирует список domain моделей в DTO
func FromDomainCustomerList(customers []*domain.Customer) *CustomerListResponse {
	resp := &CustomerListResponse{
		Customers: make([]CustomerResponse, 0, len(customers)),
	}
	for _, c := range customers {
		if cr := FromDomainCustomer(c); cr != nil {
			resp.Customers = append(resp.Customers, *cr)
		}
	}
	return resp
}
