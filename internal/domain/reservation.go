package domain

import "time"

// Reservation represents a customer's request for a dated service.
// A reservation starts pending with no teams assigned; staff later assign
// servicing teams and flip the acceptance flag.
type Reservation struct {
	ID         int64
	CustomerID int64
	ServiceID  int64
	TargetDate time.Time
	Comment    *string
	IsAccepted bool

	// IDs of teams assigned to fulfil the reservation.
	// Empty until staff assign them; replaced wholesale on every update.
	TeamIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the reservation has not been accepted yet
func (r *Reservation) IsPending() bool {
	return !r.IsAccepted
}

// HasTeams returns true if at least one team is assigned
func (r *Reservation) HasTeams() bool {
	return len(r.TeamIDs) > 0
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	CustomerID *int64 // Фильтр по заказчику (опционально)
	IsAccepted *bool  // Фильтр по флагу принятия (опционально)
}
