package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/pgerrors"
	"github.com/m04kA/TheraConnect-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
)

var leaveColumns = []string{
	"id",
	"therapist_id",
	"leave_date",
	"reason",
	"status",
	"admin_notes",
	"processed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок терапевтов на выходной
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку в статусе PENDING
// Вторая не отклонённая заявка на ту же дату нарушает частичный уникальный индекс: ErrLeaveAlreadyExists
func (r *Repository) Create(ctx context.Context, leave *domain.Leave) (*domain.Leave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("leaves").
		Columns("therapist_id", "leave_date", "reason", "status").
		Values(leave.TherapistID, domain.DateOnly(leave.LeaveDate), leave.Reason, leave.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&leave.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - therapist %d on %s", ErrLeaveAlreadyExists,
				leave.TherapistID, leave.LeaveDate.Format(domain.DateFormat))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	leave.CreatedAt = createdAt.Time
	leave.UpdatedAt = updatedAt.Time

	return leave, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы два администратора не обработали её одновременно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Leave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leaveColumns...).
		From("leaves").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	leave, err := scanLeave(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeaveNotFound
	}
	if pgerrors.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetByID - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan leave: %v", ErrScanRow, err)
	}

	return leave, nil
}

// HasApprovedOn проверяет, есть ли у терапевта одобренный выходной на дату
func (r *Repository) HasApprovedOn(ctx context.Context, therapistID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("leaves").
		Where(squirrel.Eq{
			"therapist_id": therapistID,
			"leave_date":   domain.DateOnly(date),
			"status":       domain.LeaveApproved,
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasApprovedOn - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return false, fmt.Errorf("%w: HasApprovedOn - %v", txmanager.ErrSerialization, err)
		}
		return false, fmt.Errorf("%w: HasApprovedOn - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// UpdateStatus переводит PENDING заявку в конечный статус
// Обновление условное (status = PENDING): повторная обработка возвращает ErrLeaveNotPending
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus, adminNotes *string) (*domain.Leave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leaves").
		Set("status", status).
		Set("admin_notes", adminNotes).
		Set("processed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.LeavePending}).
		Suffix("RETURNING " + strings.Join(leaveColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	leave, err := scanLeave(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeaveNotPending
	}
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: UpdateStatus - %v", txmanager.ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return leave, nil
}

// List возвращает заявки по фильтру, сначала ближайшие даты
func (r *Repository) List(ctx context.Context, filter domain.LeavesFilter) ([]*domain.Leave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leaveColumns...).From("leaves")

	if filter.TherapistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"therapist_id": *filter.TherapistID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"leave_date": domain.DateOnly(*filter.Date)})
	}

	query, args, err := selectBuilder.OrderBy("leave_date ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leaves := make([]*domain.Leave, 0)
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return leaves, nil
}

// CountPending количество необработанных заявок
func (r *Repository) CountPending(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("leaves").
		Where(squirrel.Eq{"status": domain.LeavePending}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountPending - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPending - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLeave(row rowScanner) (*domain.Leave, error) {
	var l domain.Leave
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&l.ID,
		&l.TherapistID,
		&l.LeaveDate,
		&l.Reason,
		&l.Status,
		&l.AdminNotes,
		&l.ProcessedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}
