package manage_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

type mockReservationRepo struct {
	reservations map[int64]*domain.Reservation

	updated       *domain.Reservation
	replacedID    int64
	replacedTeams []int64
	replaceCalled bool
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r, ok := m.reservations[id]; ok {
		out := *r
		return &out, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (m *mockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	stored, ok := m.reservations[r.ID]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	m.updated = r
	stored.CustomerID = r.CustomerID
	stored.ServiceID = r.ServiceID
	stored.TargetDate = r.TargetDate
	stored.Comment = r.Comment
	stored.IsAccepted = r.IsAccepted
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *mockReservationRepo) ReplaceTeams(ctx context.Context, reservationID int64, teamIDs []int64) error {
	m.replaceCalled = true
	m.replacedID = reservationID
	m.replacedTeams = teamIDs
	if stored, ok := m.reservations[reservationID]; ok {
		stored.TeamIDs = teamIDs
	}
	return nil
}

type mockCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
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

type mockTeamRepo struct {
	existing map[int64]struct{}
}

func (m *mockTeamRepo) GetExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	var found []int64
	for _, id := range ids {
		if _, ok := m.existing[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

type mockAuthClient struct {
	staff map[int64]bool
}

func (m *mockAuthClient) HasStaffPermission(ctx context.Context, userID int64) (bool, error) {
	return m.staff[userID], nil
}

// mockTxManager выполняет функцию без реальной транзакции
type mockTxManager struct{}

func (mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	reservations *mockReservationRepo
	customers    *mockCustomerRepo
	services     *mockServiceRepo
	teams        *mockTeamRepo
	auth         *mockAuthClient
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{reservations: map[int64]*domain.Reservation{
			1: {
				ID:         1,
				CustomerID: 10,
				ServiceID:  7,
				TargetDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				IsAccepted: false,
				TeamIDs:    []int64{3},
			},
		}},
		customers: &mockCustomerRepo{customers: map[int64]*domain.Customer{
			10: {ID: 10, FirstName: "Иван", LastName: "Петров"},
			11: {ID: 11, FirstName: "Анна", LastName: "Сидорова"},
		}},
		services: &mockServiceRepo{services: map[int64]*domain.Service{
			7: {ID: 7, Name: "Покраска фасада"},
			8: {ID: 8, Name: "Укладка плитки"},
		}},
		teams: &mockTeamRepo{existing: map[int64]struct{}{
			3: {}, 4: {}, 5: {},
		}},
		auth: &mockAuthClient{staff: map[int64]bool{1: true}},
	}
	f.uc = NewUseCase(f.reservations, f.customers, f.services, f.teams, f.auth, mockTxManager{}, nopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		StaffID:       1,
		ReservationID: 1,
		CustomerID:    10,
		ServiceID:     7,
		TargetDate:    time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		IsAccepted:    true,
		TeamIDs:       []int64{4},
	}
}

func TestExecute_ReplacesTeamsWholesale(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Старый набор {3} замещен новым {4} целиком
	assert.True(t, f.reservations.replaceCalled)
	assert.Equal(t, int64(1), f.reservations.replacedID)
	assert.Equal(t, []int64{4}, f.reservations.replacedTeams)

	assert.Equal(t, []int64{4}, resp.TeamIDs)
	assert.True(t, resp.IsAccepted)
	assert.Equal(t, "2026-09-20", resp.TargetDate)
}

func TestExecute_EmptyTeamsClearsAssignment(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.TeamIDs = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, f.reservations.replaceCalled)
	assert.Empty(t, f.reservations.replacedTeams)
	assert.Empty(t, resp.TeamIDs)
}

func TestExecute_DeduplicatesTeamIDs(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.TeamIDs = []int64{4, 5, 4, 5}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, f.reservations.replacedTeams)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()

	req := validRequest()
	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.TeamIDs, second.TeamIDs)
	assert.Equal(t, first.IsAccepted, second.IsAccepted)
	assert.Equal(t, first.TargetDate, second.TargetDate)
}

func TestExecute_PermissionDeniedLeavesStateUntouched(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StaffID = 10 // заказчик, не персонал

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPermissionDenied)

	assert.Nil(t, f.reservations.updated)
	assert.False(t, f.reservations.replaceCalled)
	assert.Equal(t, []int64{3}, f.reservations.reservations[1].TeamIDs)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ReservationID = 99

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.CustomerID = 99

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceID = 99

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UnknownTeamRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.TeamIDs = []int64{4, 99}

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTeamNotFound)

	assert.Nil(t, f.reservations.updated)
	assert.False(t, f.reservations.replaceCalled)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"нулевой staffID", func(r *Request) { r.StaffID = 0 }},
		{"нулевой reservationID", func(r *Request) { r.ReservationID = 0 }},
		{"нулевой customerID", func(r *Request) { r.CustomerID = 0 }},
		{"нулевой serviceID", func(r *Request) { r.ServiceID = 0 }},
		{"нулевая дата", func(r *Request) { r.TargetDate = time.Time{} }},
		{"отрицательный teamID", func(r *Request) { r.TeamIDs = []int64{-1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
