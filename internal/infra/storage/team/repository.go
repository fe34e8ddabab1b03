package team

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бригадами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бригад
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бригаду. Состав сотрудников задается отдельно
// через ReplaceEmployees (рекомендуется в одной транзакции).
func (r *Repository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("teams").
		Columns("name").
		Values(team.Name).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&team.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return team, nil
}

// GetByID получает бригаду по ID вместе с составом сотрудников
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var team domain.Team
	err = executor.QueryRowContext(ctx, query, args...).Scan(&team.ID, &team.Name)
	if err == sql.ErrNoRows {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan team: %v", ErrScanRow, err)
	}

	if err := r.attachEmployeeIDs(ctx, executor, []*domain.Team{&team}); err != nil {
		return nil, err
	}

	return &team, nil
}

// GetAll получает все бригады с составами сотрудников
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("teams").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachEmployeeIDs(ctx, executor, teams); err != nil {
		return nil, err
	}

	return teams, nil
}

// GetExistingIDs возвращает подмножество переданных ID, существующих в БД.
// Используется для валидации ссылок на бригады при назначении на бронирование.
func (r *Repository) GetExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("teams").
		Where(squirrel.Expr("id = ANY(?)", pq.Array(ids))).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExistingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExistingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	existing := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetExistingIDs - scan row: %v", ErrScanRow, err)
		}
		existing = append(existing, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetExistingIDs - rows error: %v", ErrScanRow, err)
	}

	return existing, nil
}

// Update обновляет название бригады
func (r *Repository) Update(ctx context.Context, team *domain.Team) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("teams").
		Set("name", team.Name).
		Where(squirrel.Eq{"id": team.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// ReplaceEmployees заменяет состав бригады целиком (не сливает с текущим)
func (r *Repository) ReplaceEmployees(ctx context.Context, teamID int64, employeeIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("team_employees").
		Where(squirrel.Eq{"team_id": teamID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceEmployees - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceEmployees - execute delete: %v", ErrExecQuery, err)
	}

	if len(employeeIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("team_employees").
		Columns("team_id", "employee_id")

	for _, employeeID := range employeeIDs {
		insertBuilder = insertBuilder.Values(teamID, employeeID)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceEmployees - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceEmployees - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет бригаду (связи с сотрудниками и бронированиями удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// attachEmployeeIDs подгружает составы сотрудников для списка бригад одним запросом
func (r *Repository) attachEmployeeIDs(ctx context.Context, executor DBExecutor, teams []*domain.Team) error {
	if len(teams) == 0 {
		return nil
	}

	ids := make([]int64, len(teams))
	byID := make(map[int64]*domain.Team, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
		byID[t.ID] = t
		t.EmployeeIDs = make([]int64, 0)
	}

	query, args, err := psqlbuilder.Select("team_id", "employee_id").
		From("team_employees").
		Where(squirrel.Expr("team_id = ANY(?)", pq.Array(ids))).
		OrderBy("employee_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachEmployeeIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachEmployeeIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID, employeeID int64
		if err := rows.Scan(&teamID, &employeeID); err != nil {
			return fmt.Errorf("%w: attachEmployeeIDs - scan row: %v", ErrScanRow, err)
		}
		if t, ok := byID[teamID]; ok {
			t.EmployeeIDs = append(t.EmployeeIDs, employeeID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachEmployeeIDs - rows error: %v", ErrScanRow, err)
	}

	return nil
}
