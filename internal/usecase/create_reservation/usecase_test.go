package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

type mockReservationRepo struct {
	created *domain.Reservation
	err     error
}

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = r
	out := *r
	out.ID = 42
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	return &out, nil
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

func newTestUseCase(reservations *mockReservationRepo, services *mockServiceRepo) *UseCase {
	return NewUseCase(reservations, services, nopLogger{})
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	reservations := &mockReservationRepo{}
	services := &mockServiceRepo{services: map[int64]*domain.Service{
		7: {ID: 7, Name: "Покраска фасада"},
	}}
	uc := newTestUseCase(reservations, services)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	comment := "  позвонить заранее  "

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID: 10,
		ServiceID:  7,
		TargetDate: date,
		Comment:    &comment,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(10), resp.CustomerID)
	assert.Equal(t, "2026-09-15", resp.TargetDate)
	assert.False(t, resp.IsAccepted)
	assert.Empty(t, resp.TeamIDs)

	// Новая заявка всегда неподтвержденная и без бригад
	require.NotNil(t, reservations.created)
	assert.False(t, reservations.created.IsAccepted)
	assert.Empty(t, reservations.created.TeamIDs)

	// Комментарий нормализуется
	require.NotNil(t, reservations.created.Comment)
	assert.Equal(t, "позвонить заранее", *reservations.created.Comment)
}

func TestExecute_EmptyCommentBecomesNil(t *testing.T) {
	reservations := &mockReservationRepo{}
	services := &mockServiceRepo{services: map[int64]*domain.Service{
		7: {ID: 7, Name: "Покраска фасада"},
	}}
	uc := newTestUseCase(reservations, services)

	comment := "   "
	_, err := uc.Execute(context.Background(), &Request{
		CustomerID: 10,
		ServiceID:  7,
		TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Comment:    &comment,
	})
	require.NoError(t, err)
	assert.Nil(t, reservations.created.Comment)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	reservations := &mockReservationRepo{}
	services := &mockServiceRepo{services: map[int64]*domain.Service{}}
	uc := newTestUseCase(reservations, services)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID: 10,
		ServiceID:  99,
		TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, reservations.created)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tooLong := make([]byte, domain.MaxCommentLength+1)
	for i := range tooLong {
		tooLong[i] = 'x'
	}
	longComment := string(tooLong)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "нулевой customerID",
			req:  &Request{ServiceID: 7, TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "нулевой serviceID",
			req:  &Request{CustomerID: 10, TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "нулевая дата",
			req:  &Request{CustomerID: 10, ServiceID: 7},
		},
		{
			name: "слишком длинный комментарий",
			req: &Request{
				CustomerID: 10,
				ServiceID:  7,
				TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				Comment:    &longComment,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservations := &mockReservationRepo{}
			services := &mockServiceRepo{services: map[int64]*domain.Service{
				7: {ID: 7, Name: "Покраска фасада"},
			}}
			uc := newTestUseCase(reservations, services)

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, reservations.created)
		})
	}
}
