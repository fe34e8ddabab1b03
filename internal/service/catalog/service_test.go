package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type mockServiceRepo struct {
	services map[int64]*domain.Service
	nextID   int64
}

func (m *mockServiceRepo) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	m.nextID++
	service.ID = m.nextID
	m.services[service.ID] = service
	return service, nil
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (m *mockServiceRepo) GetAll(ctx context.Context) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(m.services))
	for _, s := range m.services {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	delete(m.services, id)
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

func newTestService() (*Service, *mockServiceRepo) {
	repo := &mockServiceRepo{
		services: map[int64]*domain.Service{
			5: {ID: 5, Name: "Ремонт кровли"},
		},
		nextID: 5,
	}
	auth := &mockAuthClient{staff: map[int64]bool{1: true}}
	return NewService(repo, auth, nopLogger{}), repo
}

func TestCreate_StaffCreatesService(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), 1, &models.CreateServiceRequest{
		Name: "  Отделка фасада  ",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Отделка фасада", resp.Name)
	assert.Contains(t, repo.services, resp.ID)
}

func TestCreate_NonStaffDenied(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), 42, &models.CreateServiceRequest{Name: "Отделка фасада"})
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Len(t, repo.services, 1)
}

func TestCreate_EmptyNameRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, &models.CreateServiceRequest{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_TooLongNameRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, &models.CreateServiceRequest{
		Name: strings.Repeat("x", domain.MaxServiceNameLength+1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

// Каталог читается без прав персонала
func TestList_PublicRead(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Services, 1)
	assert.Equal(t, "Ремонт кровли", resp.Services[0].Name)
}

func TestDelete_StaffOnly(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Delete(context.Background(), 42, 5)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, repo.services, int64(5))

	err = svc.Delete(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.NotContains(t, repo.services, int64(5))
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrServiceNotFound)
}
