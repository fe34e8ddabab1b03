package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-ReservationService/internal/service/customers/models"
)

type mockCustomerRepo struct {
	customers map[int64]*domain.Customer
	nextID    int64

	// createErr подменяет результат Create, имитируя ошибку уникального
	// ограничения на уровне БД (гонка между проверкой email и вставкой)
	createErr error
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, c := range m.customers {
		if c.Email == customer.Email {
			return nil, customerRepo.ErrDuplicateEmail
		}
	}
	m.nextID++
	customer.ID = m.nextID
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	m.customers[customer.ID] = customer
	return customer, nil
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (m *mockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (m *mockCustomerRepo) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	stored, ok := m.customers[customer.ID]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	for _, c := range m.customers {
		if c.ID != customer.ID && c.Email == customer.Email {
			return customerRepo.ErrDuplicateEmail
		}
	}
	stored.FirstName = customer.FirstName
	stored.LastName = customer.LastName
	stored.Email = customer.Email
	stored.Phone = customer.Phone
	stored.City = customer.City
	stored.Street = customer.Street
	stored.Postcode = customer.Postcode
	return nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return customerRepo.ErrCustomerNotFound
	}
	delete(m.customers, id)
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

// Вызывающий 1 - персонал, заказчики 7 и 8 - обычные пользователи
func newTestService() (*Service, *mockCustomerRepo) {
	repo := &mockCustomerRepo{
		customers: map[int64]*domain.Customer{
			7: {ID: 7, FirstName: "Иван", LastName: "Петров", Email: "ivan@example.com"},
			8: {ID: 8, FirstName: "Анна", LastName: "Сидорова", Email: "anna@example.com"},
		},
		nextID: 8,
	}
	auth := &mockAuthClient{staff: map[int64]bool{1: true}}
	return NewService(repo, auth, nopLogger{}), repo
}

func TestCreate_StaffCreatesCustomer(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		FirstName: "Олег",
		LastName:  "Смирнов",
		Email:     "oleg@example.com",
		Phone:     "+7 900 000-00-00",
		City:      "Москва",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Олег", resp.FirstName)
	assert.Equal(t, "oleg@example.com", resp.Email)
	assert.Contains(t, repo.customers, resp.ID)
}

// Созданный заказчик пригоден как владелец бронирования: его ID
// разрешается через GetByID, которым пользуется создание бронирований.
func TestCreate_CustomerResolvableAfterCreate(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		FirstName: "Олег",
		LastName:  "Смирнов",
		Email:     "oleg@example.com",
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "oleg@example.com", fetched.Email)
}

func TestCreate_NonStaffDenied(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), 7, &models.CreateCustomerRequest{
		FirstName: "Олег",
		LastName:  "Смирнов",
		Email:     "oleg@example.com",
	})
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Len(t, repo.customers, 2)
}

func TestCreate_EmailTaken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		FirstName: "Олег",
		LastName:  "Смирнов",
		Email:     "ivan@example.com",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

// Конфликт email, пойманный уникальным ограничением БД уже после
// предварительной проверки, тоже отдается как ErrEmailTaken
func TestCreate_DuplicateEmailFromRepository(t *testing.T) {
	svc, repo := newTestService()
	repo.createErr = customerRepo.ErrDuplicateEmail

	_, err := svc.Create(context.Background(), 1, &models.CreateCustomerRequest{
		FirstName: "Олег",
		LastName:  "Смирнов",
		Email:     "oleg@example.com",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  models.CreateCustomerRequest
	}{
		{
			name: "пустое имя",
			req:  models.CreateCustomerRequest{FirstName: "  ", LastName: "Смирнов", Email: "oleg@example.com"},
		},
		{
			name: "пустая фамилия",
			req:  models.CreateCustomerRequest{FirstName: "Олег", LastName: "", Email: "oleg@example.com"},
		},
		{
			name: "email без @",
			req:  models.CreateCustomerRequest{FirstName: "Олег", LastName: "Смирнов", Email: "oleg.example.com"},
		},
		{
			name: "пустой email",
			req:  models.CreateCustomerRequest{FirstName: "Олег", LastName: "Смирнов", Email: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, &tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_SelfAllowed(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 7, 7)
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", resp.Email)
}

func TestGetByID_ForeignProfileDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 7, 8)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_StaffReadsAnyProfile(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", resp.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdate_SelfAllowed(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Update(context.Background(), 7, 7, &models.UpdateCustomerRequest{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Phone:     "+7 911 111-11-11",
	})
	require.NoError(t, err)

	assert.Equal(t, "+7 911 111-11-11", resp.Phone)
	assert.Equal(t, "+7 911 111-11-11", repo.customers[7].Phone)
}

func TestUpdate_ForeignProfileDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 7, 8, &models.UpdateCustomerRequest{
		FirstName: "Анна",
		LastName:  "Сидорова",
		Email:     "anna@example.com",
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

// Собственный email при обновлении конфликтом не считается
func TestUpdate_OwnEmailKept(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 7, 7, &models.UpdateCustomerRequest{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
	})
	require.NoError(t, err)
}

func TestUpdate_EmailTakenByOther(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 7, 7, &models.UpdateCustomerRequest{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "anna@example.com",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestList_StaffOnly(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), 7)
	require.ErrorIs(t, err, ErrPermissionDenied)

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)
}

func TestDelete_StaffOnly(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Delete(context.Background(), 7, 8)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, repo.customers, int64(8))

	err = svc.Delete(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.NotContains(t, repo.customers, int64(8))
}
