package teams

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	teamRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/team"
	"github.com/m04kA/SMC-ReservationService/internal/service/teams/models"
)

type mockTeamRepo struct {
	teams  map[int64]*domain.Team
	nextID int64

	replacedTeamID    int64
	replacedEmployees []int64
}

func (m *mockTeamRepo) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	m.nextID++
	team.ID = m.nextID
	m.teams[team.ID] = team
	return team, nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, teamRepo.ErrTeamNotFound
}

func (m *mockTeamRepo) GetAll(ctx context.Context) ([]*domain.Team, error) {
	result := make([]*domain.Team, 0, len(m.teams))
	for _, t := range m.teams {
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, team *domain.Team) error {
	stored, ok := m.teams[team.ID]
	if !ok {
		return teamRepo.ErrTeamNotFound
	}
	stored.Name = team.Name
	return nil
}

func (m *mockTeamRepo) ReplaceEmployees(ctx context.Context, teamID int64, employeeIDs []int64) error {
	m.replacedTeamID = teamID
	m.replacedEmployees = employeeIDs
	if stored, ok := m.teams[teamID]; ok {
		stored.EmployeeIDs = employeeIDs
	}
	return nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.teams[id]; !ok {
		return teamRepo.ErrTeamNotFound
	}
	delete(m.teams, id)
	return nil
}

type mockEmployeeRepo struct {
	existing map[int64]struct{}
}

func (m *mockEmployeeRepo) GetExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
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

func (mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() (*Service, *mockTeamRepo) {
	repo := &mockTeamRepo{
		teams: map[int64]*domain.Team{
			1: {ID: 1, Name: "Бригада отделки", EmployeeIDs: []int64{100}},
		},
		nextID: 1,
	}
	employees := &mockEmployeeRepo{existing: map[int64]struct{}{
		100: {}, 101: {}, 102: {},
	}}
	auth := &mockAuthClient{staff: map[int64]bool{1: true}}
	return NewService(repo, employees, auth, mockTxManager{}, nopLogger{}), repo
}

func TestCreate_AssignsEmployees(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), 1, &models.CreateTeamRequest{
		Name:        "Бригада кровли",
		EmployeeIDs: []int64{101, 102},
	})
	require.NoError(t, err)

	assert.Equal(t, "Бригада кровли", resp.Name)
	assert.Equal(t, []int64{101, 102}, resp.EmployeeIDs)
	assert.Equal(t, resp.ID, repo.replacedTeamID)
	assert.Equal(t, []int64{101, 102}, repo.replacedEmployees)
}

func TestCreate_UnknownEmployeeRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, &models.CreateTeamRequest{
		Name:        "Бригада кровли",
		EmployeeIDs: []int64{101, 999},
	})
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestCreate_NonStaffDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 42, &models.CreateTeamRequest{Name: "Бригада кровли"})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreate_EmptyNameRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, &models.CreateTeamRequest{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ReplacesEmployeesWholesale(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Update(context.Background(), 1, 1, &models.UpdateTeamRequest{
		Name:        "Бригада отделки",
		EmployeeIDs: []int64{101},
	})
	require.NoError(t, err)

	// Старый состав {100} замещен новым {101} целиком
	assert.Equal(t, []int64{101}, resp.EmployeeIDs)
	assert.Equal(t, []int64{101}, repo.teams[1].EmployeeIDs)
}

func TestUpdate_EmptyListClearsTeam(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Update(context.Background(), 1, 1, &models.UpdateTeamRequest{
		Name:        "Бригада отделки",
		EmployeeIDs: nil,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.EmployeeIDs)
	assert.Empty(t, repo.teams[1].EmployeeIDs)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 1, 99, &models.UpdateTeamRequest{Name: "Бригада кровли"})
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestDelete_StaffOnly(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Delete(context.Background(), 42, 1)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, repo.teams, int64(1))

	err = svc.Delete(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.NotContains(t, repo.teams, int64(1))
}
