package therapist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/pgerrors"
	"github.com/m04kA/TheraConnect-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

var therapistColumns = []string{
	"id",
	"user_id",
	"full_name",
	"specialization",
	"base_cost",
	"status",
	"activated_times",
	"created_at",
	"updated_at",
}

// Repository репозиторий терапевтов и их ежедневного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория терапевтов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает терапевта по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Therapist, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает терапевта по ID пользователя (X-User-ID)
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Therapist, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

// List возвращает терапевтов по фильтру, отсортированных по имени
func (r *Repository) List(ctx context.Context, filter domain.TherapistsFilter) ([]*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(therapistColumns...).From("therapists")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Specialization != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"specialization": "%" + *filter.Specialization + "%"})
	}

	query, args, err := selectBuilder.OrderBy("full_name ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	therapists := make([]*domain.Therapist, 0)
	for rows.Next() {
		t, err := scanTherapist(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		therapists = append(therapists, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return therapists, nil
}

// ActivateTimes сохраняет ежедневное время приёма
// Обновление проходит только если время ещё не задано, иначе ErrTimesAlreadySet
func (r *Repository) ActivateTimes(ctx context.Context, therapistID int64, times []types.TimeString) (*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := make([]string, len(times))
	for i, t := range times {
		values[i] = t.String()
	}

	query, args, err := psqlbuilder.Update("therapists").
		Set("activated_times", pq.Array(values)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": therapistID}).
		Where("cardinality(activated_times) = 0").
		Suffix("RETURNING " + joinColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ActivateTimes - build update query: %v", ErrBuildQuery, err)
	}

	therapist, err := scanTherapist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimesAlreadySet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ActivateTimes - execute update: %v", ErrExecQuery, err)
	}

	return therapist, nil
}

// CountByStatus количество терапевтов по статусам
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.TherapistStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("therapists").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.TherapistStatus]int)
	for rows.Next() {
		var status domain.TherapistStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(therapistColumns...).
		From("therapists").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	therapist, err := scanTherapist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTherapistNotFound
	}
	if pgerrors.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: %s - %v", txmanager.ErrSerialization, op, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan therapist: %v", ErrScanRow, op, err)
	}

	return therapist, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTherapist(row rowScanner) (*domain.Therapist, error) {
	var t domain.Therapist
	var times []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.FullName,
		&t.Specialization,
		&t.BaseCost,
		&t.Status,
		pq.Array(&times),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.ActivatedTimes = make([]types.TimeString, len(times))
	for i, s := range times {
		t.ActivatedTimes[i] = types.TimeString(s)
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

func joinColumns() string {
	return strings.Join(therapistColumns, ", ")
}
