package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

type mockReservationRepo struct {
	reservations map[int64]*domain.Reservation
	deleted      []int64
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r, ok := m.reservations[id]; ok {
		return r, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (m *mockReservationRepo) GetAll(ctx context.Context, isAccepted *bool) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range m.reservations {
		if isAccepted == nil || r.IsAccepted == *isAccepted {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockReservationRepo) GetByCustomerID(ctx context.Context, customerID int64, isAccepted *bool) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range m.reservations {
		if r.CustomerID != customerID {
			continue
		}
		if isAccepted == nil || r.IsAccepted == *isAccepted {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockReservationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(m.reservations, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockAuthClient struct {
	staff map[int64]bool
}

func (m *mockAuthClient) HasStaffPermission(ctx context.Context, userID int64) (bool, error) {
	return m.staff[userID], nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *mockReservationRepo) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{reservations: map[int64]*domain.Reservation{
		1: {ID: 1, CustomerID: 10, ServiceID: 7, TargetDate: date, IsAccepted: false},
		2: {ID: 2, CustomerID: 10, ServiceID: 8, TargetDate: date, IsAccepted: true},
		3: {ID: 3, CustomerID: 11, ServiceID: 7, TargetDate: date, IsAccepted: false},
	}}
	auth := &mockAuthClient{staff: map[int64]bool{1: true}}
	return NewService(repo, auth, nopLogger{}), repo
}

func TestGetByID_OwnerCanRead(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-15", resp.TargetDate)
	assert.NotNil(t, resp.TeamIDs)
}

func TestGetByID_StaffCanReadAny(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.CustomerID)
}

func TestGetByID_OtherCustomerDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 1, 11)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 99, 1)
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetCustomerReservations_PartitionsByAcceptance(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetCustomerReservations(context.Background(), 10, 10)
	require.NoError(t, err)

	require.Len(t, resp.Pending, 1)
	require.Len(t, resp.Accepted, 1)
	assert.Equal(t, int64(1), resp.Pending[0].ID)
	assert.Equal(t, int64(2), resp.Accepted[0].ID)
}

func TestGetCustomerReservations_ForeignListDenied(t *testing.T) {
	svc, _ := newTestService()

	// Даже персонал не ходит через этот метод за чужим списком
	_, err := svc.GetCustomerReservations(context.Background(), 10, 11)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetAllReservations_StaffOnly(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetAllReservations(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Pending, 2)
	assert.Len(t, resp.Accepted, 1)

	_, err = svc.GetAllReservations(context.Background(), 10)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDelete_StaffOnly(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Delete(context.Background(), 1, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, repo.deleted)

	err = svc.Delete(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)

	err = svc.Delete(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrReservationNotFound)
}
