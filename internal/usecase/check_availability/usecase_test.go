package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

type occupiedSlot struct {
	date      string
	serviceID int64
}

type mockReservationRepo struct {
	occupied map[occupiedSlot]struct{}
}

func (m *mockReservationRepo) ExistsByDateAndService(ctx context.Context, targetDate time.Time, serviceID int64) (bool, error) {
	_, ok := m.occupied[occupiedSlot{targetDate.Format(domain.DateFormat), serviceID}]
	return ok, nil
}

type mockServiceRepo struct {
	services map[int64]*domain.Service
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return nil, serviceRepo.ErrServiceNotFound
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_Availability(t *testing.T) {
	reservations := &mockReservationRepo{occupied: map[occupiedSlot]struct{}{
		{"2026-09-15", 7}: {},
	}}
	services := &mockServiceRepo{services: map[int64]*domain.Service{
		7: {ID: 7, Name: "Покраска фасада"},
		8: {ID: 8, Name: "Укладка плитки"},
	}}
	uc := NewUseCase(reservations, services, nopLogger{})

	tests := []struct {
		name          string
		serviceID     int64
		date          time.Time
		wantAvailable bool
	}{
		{
			name:          "дата занята заявкой по этой услуге",
			serviceID:     7,
			date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			wantAvailable: false,
		},
		{
			name:          "та же дата свободна для другой услуги",
			serviceID:     8,
			date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			wantAvailable: true,
		},
		{
			name:          "другая дата свободна для той же услуги",
			serviceID:     7,
			date:          time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
			wantAvailable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{
				ServiceID:  tt.serviceID,
				TargetDate: tt.date,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, resp.IsAvailable)
			assert.Equal(t, tt.serviceID, resp.ServiceID)
			assert.Equal(t, tt.date.Format(domain.DateFormat), resp.TargetDate)
		})
	}
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := NewUseCase(
		&mockReservationRepo{occupied: map[occupiedSlot]struct{}{}},
		&mockServiceRepo{services: map[int64]*domain.Service{}},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID:  99,
		TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(
		&mockReservationRepo{occupied: map[occupiedSlot]struct{}{}},
		&mockServiceRepo{services: map[int64]*domain.Service{}},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 7})
	require.ErrorIs(t, err, ErrInvalidInput)
}
