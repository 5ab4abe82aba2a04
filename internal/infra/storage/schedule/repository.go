package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// Repository репозиторий недельных шаблонов и исключений расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplateDay получает интервалы шаблона мастера на день недели,
// упорядоченные по времени открытия
func (r *Repository) GetTemplateDay(ctx context.Context, companyID, employeeID int64, weekday time.Weekday) ([]*domain.TemplateInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_id",
		"employee_id",
		"weekday",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("schedule_template_intervals").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("open_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplateDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.TemplateInterval, 0)
	for rows.Next() {
		var interval domain.TemplateInterval
		var weekdayInt int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&interval.ID,
			&interval.CompanyID,
			&interval.EmployeeID,
			&weekdayInt,
			&interval.OpenTime,
			&interval.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTemplateDay - scan row: %v", ErrScanRow, err)
		}

		interval.Weekday = time.Weekday(weekdayInt)
		interval.CreatedAt = createdAt.Time
		interval.UpdatedAt = updatedAt.Time
		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplateDay - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// ReplaceTemplateDay заменяет шаблон дня недели целиком: удаляет старые
// интервалы и вставляет новые. Шаблон меняется только целым днём, частичных
// правок нет. Ожидается вызов внутри транзакции
func (r *Repository) ReplaceTemplateDay(ctx context.Context, companyID, employeeID int64, weekday time.Weekday, intervals []*domain.TemplateInterval) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("schedule_template_intervals").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplateDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplateDay - execute delete: %v", ErrExecQuery, err)
	}

	if len(intervals) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("schedule_template_intervals").
		Columns("company_id", "employee_id", "weekday", "open_time", "close_time")

	for _, interval := range intervals {
		insertBuilder = insertBuilder.Values(
			companyID,
			employeeID,
			int(weekday),
			interval.OpenTime,
			interval.CloseTime,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplateDay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplateDay - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

var exceptionColumns = []string{
	"id",
	"company_id",
	"employee_id",
	"except_date",
	"slot_time",
	"kind",
	"created_at",
}

// GetExceptions получает исключения расписания мастера на дату
func (r *Repository) GetExceptions(ctx context.Context, companyID, employeeID int64, date time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"except_date": date}).
		OrderBy("slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// ListExceptionsFrom получает исключения мастера начиная с указанной даты
// Используется для обзора расписания: персонал видит действующие исключения
func (r *Repository) ListExceptionsFrom(ctx context.Context, companyID, employeeID int64, from time.Time) ([]*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exceptionColumns...).
		From("schedule_exceptions").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.GtOrEq{"except_date": from}).
		OrderBy("except_date ASC", "slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptionsFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptionsFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// scanExceptions сканирует результаты запроса в слайс исключений
func scanExceptions(rows *sql.Rows) ([]*domain.ScheduleException, error) {
	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		var exc domain.ScheduleException
		var createdAt sql.NullTime

		err := rows.Scan(
			&exc.ID,
			&exc.CompanyID,
			&exc.EmployeeID,
			&exc.Date,
			&exc.SlotTime,
			&exc.Kind,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanExceptions - scan row: %v", ErrScanRow, err)
		}

		exc.CreatedAt = createdAt.Time
		exceptions = append(exceptions, &exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanExceptions - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

// AddException добавляет исключение расписания
// Возвращает ErrDuplicateException, если такое исключение уже есть
func (r *Repository) AddException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_exceptions").
		Columns("company_id", "employee_id", "except_date", "slot_time", "kind").
		Values(exc.CompanyID, exc.EmployeeID, exc.Date, exc.SlotTime, exc.Kind).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exc.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateException
		}
		return nil, fmt.Errorf("%w: AddException - execute insert: %v", ErrExecQuery, err)
	}

	exc.CreatedAt = createdAt.Time
	return exc, nil
}

// RemoveException удаляет исключение расписания
// Возвращает ErrExceptionNotFound, если исключения нет
func (r *Repository) RemoveException(ctx context.Context, companyID, employeeID int64, date time.Time, slotTime string, kind domain.ExceptionKind) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_exceptions").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"except_date": date}).
		Where(squirrel.Eq{"slot_time": slotTime}).
		Where(squirrel.Eq{"kind": kind}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveException - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
