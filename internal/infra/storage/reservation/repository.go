package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Бронирование создается без назначенных бригад - их назначает персонал отдельной операцией.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_id",
			"service_id",
			"target_date",
			"comment",
			"is_accepted",
		).
		Values(
			reservation.CustomerID,
			reservation.ServiceID,
			reservation.TargetDate,
			reservation.Comment,
			reservation.IsAccepted,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID вместе с набором назначенных бригад
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"service_id",
		"target_date",
		"comment",
		"is_accepted",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CustomerID,
		&reservation.ServiceID,
		&reservation.TargetDate,
		&reservation.Comment,
		&reservation.IsAccepted,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	if err := r.attachTeamIDs(ctx, executor, []*domain.Reservation{&reservation}); err != nil {
		return nil, err
	}

	return &reservation, nil
}

// GetAll получает все бронирования в порядке создания.
// Опционально фильтрует по флагу принятия.
func (r *Repository) GetAll(ctx context.Context, isAccepted *bool) ([]*domain.Reservation, error) {
	return r.getWithFilter(ctx, domain.ReservationFilter{IsAccepted: isAccepted})
}

// GetByCustomerID получает бронирования заказчика в порядке создания.
// Опционально фильтрует по флагу принятия.
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, isAccepted *bool) ([]*domain.Reservation, error) {
	return r.getWithFilter(ctx, domain.ReservationFilter{CustomerID: &customerID, IsAccepted: isAccepted})
}

func (r *Repository) getWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"customer_id",
		"service_id",
		"target_date",
		"comment",
		"is_accepted",
		"created_at",
		"updated_at",
	).
		From("reservations").
		OrderBy("id ASC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.IsAccepted != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_accepted": *filter.IsAccepted})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachTeamIDs(ctx, executor, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// ExistsByDateAndService проверяет, существует ли хотя бы одно бронирование
// на указанную дату и услугу. Используется для рекомендательной проверки доступности.
func (r *Repository) ExistsByDateAndService(ctx context.Context, targetDate time.Time, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"target_date": targetDate, "service_id": serviceID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByDateAndService - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByDateAndService - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Update перезаписывает все поля бронирования (full-row replace).
// Набор бригад обновляется отдельно через ReplaceTeams в той же транзакции.
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("customer_id", reservation.CustomerID).
		Set("service_id", reservation.ServiceID).
		Set("target_date", reservation.TargetDate).
		Set("comment", reservation.Comment).
		Set("is_accepted", reservation.IsAccepted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
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
		return ErrReservationNotFound
	}

	return nil
}

// ReplaceTeams заменяет набор назначенных бригад целиком (не сливает с текущим).
// Рекомендуется вызывать внутри транзакции вместе с Update.
func (r *Repository) ReplaceTeams(ctx context.Context, reservationID int64, teamIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_teams").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceTeams - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceTeams - execute delete: %v", ErrExecQuery, err)
	}

	if len(teamIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("reservation_teams").
		Columns("reservation_id", "team_id")

	for _, teamID := range teamIDs {
		insertBuilder = insertBuilder.Values(reservationID, teamID)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTeams - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceTeams - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет бронирование (связи с бригадами удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// attachTeamIDs подгружает наборы бригад для списка бронирований одним запросом
func (r *Repository) attachTeamIDs(ctx context.Context, executor DBExecutor, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]int64, len(reservations))
	byID := make(map[int64]*domain.Reservation, len(reservations))
	for i, res := range reservations {
		ids[i] = res.ID
		byID[res.ID] = res
		res.TeamIDs = make([]int64, 0)
	}

	query, args, err := psqlbuilder.Select("reservation_id", "team_id").
		From("reservation_teams").
		Where(squirrel.Expr("reservation_id = ANY(?)", pq.Array(ids))).
		OrderBy("team_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachTeamIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachTeamIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID, teamID int64
		if err := rows.Scan(&reservationID, &teamID); err != nil {
			return fmt.Errorf("%w: attachTeamIDs - scan row: %v", ErrScanRow, err)
		}
		if res, ok := byID[reservationID]; ok {
			res.TeamIDs = append(res.TeamIDs, teamID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachTeamIDs - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&reservation.ID,
			&reservation.CustomerID,
			&reservation.ServiceID,
			&reservation.TargetDate,
			&reservation.Comment,
			&reservation.IsAccepted,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
