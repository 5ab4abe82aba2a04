package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
)

var subscriptionColumns = []string{
	"id",
	"company_id",
	"client_id",
	"active",
	"starts_at",
	"ends_at",
	"total_visits",
	"used_visits",
	"is_history",
	"created_at",
	"updated_at",
}

// Repository репозиторий абонементов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория абонементов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый абонемент
func (r *Repository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("subscriptions").
		Columns("company_id", "client_id", "active", "starts_at", "ends_at", "total_visits", "used_visits").
		Values(sub.CompanyID, sub.ClientID, sub.Active, sub.StartsAt, sub.EndsAt, sub.TotalVisits, sub.UsedVisits).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sub.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return sub, nil
}

// GetActiveByClient получает активный абонемент клиента
// Возвращает ErrSubscriptionNotFound, если активного абонемента нет
func (r *Repository) GetActiveByClient(ctx context.Context, clientID int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"client_id": clientID}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("ends_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByClient - build select query: %v", ErrBuildQuery, err)
	}

	sub, err := r.scanSubscription(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByClient - scan subscription: %v", ErrScanRow, err)
	}

	return sub, nil
}

// Deactivate переводит абонемент в неактивное состояние
// Идемпотентный условный переход: деактивирует только если абонемент ещё
// активен, повторный вызов возвращает false. Одна и та же операция
// используется и ленивой проверкой на чтении, и фоновой задачей -
// гонки двойного перехода нет
func (r *Repository) Deactivate(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("active", false).
		Set("is_history", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"active": true}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ListExpired получает активные абонементы с истёкшим сроком действия
func (r *Repository) ListExpired(ctx context.Context, now time.Time) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Lt{"ends_at": now}).
		OrderBy("ends_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	subs := make([]*domain.Subscription, 0)
	for rows.Next() {
		sub, err := r.scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListExpired - scan row: %v", ErrScanRow, err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExpired - rows error: %v", ErrScanRow, err)
	}

	return subs, nil
}

// IncrementUsedVisits увеличивает счётчик использованных визитов
// Возвращает обновлённый абонемент; ErrSubscriptionNotFound, если абонемент
// уже неактивен
func (r *Repository) IncrementUsedVisits(ctx context.Context, id int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("used_visits", squirrel.Expr("used_visits + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"active": true}).
		Suffix("RETURNING " + strings.Join(subscriptionColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: IncrementUsedVisits - build update query: %v", ErrBuildQuery, err)
	}

	sub, err := r.scanSubscription(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementUsedVisits - scan subscription: %v", ErrScanRow, err)
	}

	return sub, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var sub domain.Subscription
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sub.ID,
		&sub.CompanyID,
		&sub.ClientID,
		&sub.Active,
		&sub.StartsAt,
		&sub.EndsAt,
		&sub.TotalVisits,
		&sub.UsedVisits,
		&sub.IsHistory,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return &sub, nil
}

