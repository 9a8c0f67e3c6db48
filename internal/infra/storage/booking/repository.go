package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/pgerrors"
	"github.com/m04kA/TheraConnect-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"parent_id",
	"child_id",
	"therapist_id",
	"slot_date",
	"start_time",
	"duration_minutes",
	"status",
	"recurrence_group_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Занятость слота гарантирует частичный уникальный индекс (therapist_id, slot_date, start_time)
// по неотменённым записям: нарушение превращается в ErrSlotAlreadyBooked
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"parent_id",
			"child_id",
			"therapist_id",
			"slot_date",
			"start_time",
			"duration_minutes",
			"status",
			"recurrence_group_id",
		).
		Values(
			booking.ParentID,
			booking.ChildID,
			booking.TherapistID,
			domain.DateOnly(booking.SlotDate),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			nullUUID(booking.RecurrenceGroupID),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: Create - therapist %d at %s %s", ErrSlotAlreadyBooked,
				booking.TherapistID, booking.SlotDate.Format(domain.DateFormat), booking.StartTime)
		case pgerrors.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: Create - %v", txmanager.ErrSerialization, err)
		case pgerrors.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: Create - %v", ErrInvalidReference, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if pgerrors.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetByID - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveBySlot возвращает неотменённое бронирование слота или ErrBookingNotFound
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetActiveBySlot(ctx context.Context, therapistID int64, date time.Time, startTime types.TimeString) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"therapist_id": therapistID,
			"slot_date":    domain.DateOnly(date),
			"start_time":   startTime,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if pgerrors.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetActiveBySlot - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetBookedTimes возвращает время начала всех неотменённых бронирований терапевта на дату
func (r *Repository) GetBookedTimes(ctx context.Context, therapistID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("bookings").
		Where(squirrel.Eq{
			"therapist_id": therapistID,
			"slot_date":    domain.DateOnly(date),
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTimes - scan start_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// List получает бронирования с гибкой фильтрацией
// Без Status и IncludeCancelled отменённые бронирования исключаются
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.ParentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"parent_id": *filter.ParentID})
	}
	if filter.TherapistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"therapist_id": *filter.TherapistID})
	}
	if filter.ChildID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"child_id": *filter.ChildID})
	}
	if filter.RecurrenceGroupID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"recurrence_group_id": *filter.RecurrenceGroupID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(*filter.EndDate)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := selectBuilder.
		OrderBy("slot_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountScheduledByChild количество SCHEDULED бронирований ребёнка
func (r *Repository) CountScheduledByChild(ctx context.Context, childID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"child_id": childID, "status": domain.StatusScheduled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountScheduledByChild - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountScheduledByChild - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByStatus количество бронирований по статусам
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
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

	counts := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
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

// Cancel отменяет SCHEDULED бронирование с указанием причины
// Бронирование в другом статусе не изменяется: ErrInvalidStatusTransition
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	bookings, err := r.cancelWhere(ctx, "Cancel", squirrel.Eq{"id": id}, reason)
	if err != nil {
		return nil, err
	}

	if len(bookings) == 0 {
		return nil, ErrInvalidStatusTransition
	}

	return bookings[0], nil
}

// CancelScheduledByTherapistAndDate отменяет все SCHEDULED бронирования терапевта на дату
// Возвращает отменённые бронирования (для уведомления родителей)
func (r *Repository) CancelScheduledByTherapistAndDate(ctx context.Context, therapistID int64, date time.Time, reason string) ([]*domain.Booking, error) {
	return r.cancelWhere(ctx, "CancelScheduledByTherapistAndDate", squirrel.Eq{
		"therapist_id": therapistID,
		"slot_date":    domain.DateOnly(date),
	}, reason)
}

// CancelByRecurrenceGroup отменяет SCHEDULED бронирования группы начиная с fromDate
func (r *Repository) CancelByRecurrenceGroup(ctx context.Context, groupID uuid.UUID, fromDate time.Time, reason string) ([]*domain.Booking, error) {
	return r.cancelWhere(ctx, "CancelByRecurrenceGroup", squirrel.And{
		squirrel.Eq{"recurrence_group_id": groupID},
		squirrel.GtOrEq{"slot_date": domain.DateOnly(fromDate)},
	}, reason)
}

// Complete переводит SCHEDULED бронирование в COMPLETED
func (r *Repository) Complete(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusScheduled}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidStatusTransition
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

func (r *Repository) cancelWhere(ctx context.Context, op string, where squirrel.Sqlizer, reason string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: %s - %v", txmanager.ErrSerialization, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func returningColumns() string {
	return strings.Join(bookingColumns, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var groupID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ParentID,
		&booking.ChildID,
		&booking.TherapistID,
		&booking.SlotDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&groupID,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if groupID.Valid {
		id := groupID.UUID
		booking.RecurrenceGroupID = &id
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
