package customer

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

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с заказчиками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказчиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового заказчика
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"first_name",
			"last_name",
			"email",
			"phone",
			"city",
			"street",
			"postcode",
		).
		Values(
			customer.FirstName,
			customer.LastName,
			customer.Email,
			customer.Phone,
			customer.City,
			customer.Street,
			customer.Postcode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return customer, nil
}

// GetByID получает заказчика по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectCustomer().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCustomer(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByEmail получает заказчика по email.
// Используется для проверки уникальности при обновлении контактных данных.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectCustomer().
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCustomer(executor.QueryRowContext(ctx, query, args...), "GetByEmail")
}

// GetAll получает всех заказчиков
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectCustomer().
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

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.City,
			&c.Street,
			&c.Postcode,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

// Update обновляет контактные данные заказчика
func (r *Repository) Update(ctx context.Context, customer *domain.Customer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("first_name", customer.FirstName).
		Set("last_name", customer.LastName).
		Set("email", customer.Email).
		Set("phone", customer.Phone).
		Set("city", customer.City).
		Set("street", customer.Street).
		Set("postcode", customer.Postcode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": customer.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete удаляет заказчика (его бронирования удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("customers").
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
		return ErrCustomerNotFound
	}

	return nil
}

func selectCustomer() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"city",
		"street",
		"postcode",
		"created_at",
		"updated_at",
	).From("customers")
}

func (r *Repository) scanCustomer(row *sql.Row, op string) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.City,
		&c.Street,
		&c.Postcode,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %v", ErrScanRow, op, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
