package check_availability

import checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ServiceID   int64  `json:"serviceId"`
	TargetDate  string `json:"targetDate"`
	IsAvailable bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ServiceID:   resp.ServiceID,
		TargetDate:  resp.TargetDate,
		IsAvailable: resp.IsAvailable,
	}
}
