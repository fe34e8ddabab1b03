package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ServiceID  int64   `json:"serviceId"`
	TargetDate string  `json:"targetDate"` // "2026-09-15"
	Comment    *string `json:"comment,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customerId"`
	ServiceID  int64   `json:"serviceId"`
	TargetDate string  `json:"targetDate"`
	Comment    *string `json:"comment,omitempty"`
	IsAccepted bool    `json:"isAccepted"`
	TeamIDs    []int64 `json:"teamIds"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	targetDate, err := time.Parse(domain.DateFormat, r.TargetDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		TargetDate: targetDate,
		Comment:    r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	teamIDs := resp.TeamIDs
	if teamIDs == nil {
		teamIDs = []int64{}
	}

	return &ReservationResponse{
		ID:         resp.ID,
		CustomerID: resp.CustomerID,
		ServiceID:  resp.ServiceID,
		TargetDate: resp.TargetDate,
		Comment:    resp.Comment,
		IsAccepted: resp.IsAccepted,
		TeamIDs:    teamIDs,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
