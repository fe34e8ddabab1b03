package employees

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-ReservationService/internal/service/employees/models"
)

type mockEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	m.nextID++
	employee.ID = m.nextID
	m.employees[employee.ID] = employee
	return employee, nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, employeeRepo.ErrEmployeeNotFound
}

func (m *mockEmployeeRepo) GetAll(ctx context.Context) ([]*domain.Employee, error) {
	result := make([]*domain.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, e)
	}
	return result, nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, employee *domain.Employee) error {
	stored, ok := m.employees[employee.ID]
	if !ok {
		return employeeRepo.ErrEmployeeNotFound
	}
	stored.FirstName = employee.FirstName
	stored.LastName = employee.LastName
	stored.Job = employee.Job
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return employeeRepo.ErrEmployeeNotFound
	}
	delete(m.employees, id)
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

func newTestService() (*Service, *mockEmployeeRepo) {
	repo := &mockEmployeeRepo{
		employees: map[int64]*domain.Employee{
			10: {ID: 10, FirstName: "Сергей", LastName: "Кузнецов", Job: domain.JobChief},
		},
		nextID: 10,
	}
	auth := &mockAuthClient{staff: map[int64]bool{1: true}}
	return NewService(repo, auth, nopLogger{}), repo
}

func TestCreate_StaffCreatesEmployee(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), 1, &models.CreateEmployeeRequest{
		FirstName: "Павел",
		LastName:  "Волков",
		Job:       "handyman",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "handyman", resp.Job)
	assert.Contains(t, repo.employees, resp.ID)
}

func TestCreate_NonStaffDenied(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), 42, &models.CreateEmployeeRequest{
		FirstName: "Павел",
		LastName:  "Волков",
		Job:       "handyman",
	})
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Len(t, repo.employees, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  models.CreateEmployeeRequest
	}{
		{
			name: "пустое имя",
			req:  models.CreateEmployeeRequest{FirstName: " ", LastName: "Волков", Job: "handyman"},
		},
		{
			name: "пустая фамилия",
			req:  models.CreateEmployeeRequest{FirstName: "Павел", LastName: "", Job: "chief"},
		},
		{
			name: "неизвестная должность",
			req:  models.CreateEmployeeRequest{FirstName: "Павел", LastName: "Волков", Job: "manager"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, &tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_StaffOnly(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "chief", resp.Job)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestList_StaffOnly(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), 42)
	require.ErrorIs(t, err, ErrPermissionDenied)

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Employees, 1)
}

func TestUpdate_ChangesJobRole(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Update(context.Background(), 1, 10, &models.UpdateEmployeeRequest{
		FirstName: "Сергей",
		LastName:  "Кузнецов",
		Job:       "handyman",
	})
	require.NoError(t, err)

	assert.Equal(t, "handyman", resp.Job)
	assert.Equal(t, domain.JobHandyman, repo.employees[10].Job)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 1, 99, &models.UpdateEmployeeRequest{
		FirstName: "Сергей",
		LastName:  "Кузнецов",
		Job:       "chief",
	})
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestDelete_StaffOnly(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Delete(context.Background(), 42, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, repo.employees, int64(10))

	err = svc.Delete(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NotContains(t, repo.employees, int64(10))
}
