package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customerId"`
	ServiceID  int64   `json:"serviceId"`
	TargetDate string  `json:"targetDate"` // "2024-06-01"
	Comment    *string `json:"comment,omitempty"`
	IsAccepted bool    `json:"isAccepted"`
	TeamIDs    []int64 `json:"teamIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PartitionedReservationsResponse списки бронирований, разделенные
// на ожидающие принятия и принятые
type PartitionedReservationsResponse struct {
	Pending  []ReservationResponse `json:"pending"`
	Accepted []ReservationResponse `json:"accepted"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	teamIDs := r.TeamIDs
	if teamIDs == nil {
		teamIDs = []int64{}
	}

	return &ReservationResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		ServiceID:  r.ServiceID,
		TargetDate: r.TargetDate.Format(domain.DateFormat),
		Comment:    r.Comment,
		IsAccepted: r.IsAccepted,
		TeamIDs:    teamIDs,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) []ReservationResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		if resp := FromDomainReservation(r); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// NewPartitionedResponse собирает ответ из двух непересекающихся списков
func NewPartitionedResponse(pending, accepted []*domain.Reservation) *PartitionedReservationsResponse {
	return &PartitionedReservationsResponse{
		Pending:  FromDomainReservationList(pending),
		Accepted: FromDomainReservationList(accepted),
	}
}
