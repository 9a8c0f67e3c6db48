package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/pgerrors"
	"github.com/m04kA/TheraConnect-BookingService/pkg/psqlbuilder"
)

var reportColumns = []string{
	"id",
	"booking_id",
	"therapist_id",
	"summary",
	"progress",
	"recommendations",
	"created_at",
	"updated_at",
}

var feedbackColumns = []string{
	"id",
	"booking_id",
	"parent_id",
	"rating",
	"comment",
	"created_at",
}

// Repository репозиторий отчётов терапевтов и отзывов родителей по сессиям
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateReport сохраняет отчёт терапевта
// Второй отчёт на то же бронирование нарушает уникальный индекс: ErrReportAlreadyExists
func (r *Repository) CreateReport(ctx context.Context, report *domain.SessionReport) (*domain.SessionReport, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("session_reports").
		Columns("booking_id", "therapist_id", "summary", "progress", "recommendations").
		Values(report.BookingID, report.TherapistID, report.Summary, report.Progress, report.Recommendations).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateReport - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&report.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: CreateReport - booking %d", ErrReportAlreadyExists, report.BookingID)
		}
		return nil, fmt.Errorf("%w: CreateReport - execute insert: %v", ErrExecQuery, err)
	}

	report.CreatedAt = createdAt.Time
	report.UpdatedAt = updatedAt.Time

	return report, nil
}

// GetReportByBooking получает отчёт по ID бронирования
func (r *Repository) GetReportByBooking(ctx context.Context, bookingID int64) (*domain.SessionReport, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reportColumns...).
		From("session_reports").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReportByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rep                  domain.SessionReport
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rep.ID,
		&rep.BookingID,
		&rep.TherapistID,
		&rep.Summary,
		&rep.Progress,
		&rep.Recommendations,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReportByBooking - scan report: %v", ErrScanRow, err)
	}

	rep.CreatedAt = createdAt.Time
	rep.UpdatedAt = updatedAt.Time

	return &rep, nil
}

// CreateFeedback сохраняет отзыв родителя
// Второй отзыв на то же бронирование нарушает уникальный индекс: ErrFeedbackAlreadyExists
func (r *Repository) CreateFeedback(ctx context.Context, feedback *domain.SessionFeedback) (*domain.SessionFeedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("session_feedback").
		Columns("booking_id", "parent_id", "rating", "comment").
		Values(feedback.BookingID, feedback.ParentID, feedback.Rating, feedback.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateFeedback - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&feedback.ID, &createdAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: CreateFeedback - booking %d", ErrFeedbackAlreadyExists, feedback.BookingID)
		}
		return nil, fmt.Errorf("%w: CreateFeedback - execute insert: %v", ErrExecQuery, err)
	}

	feedback.CreatedAt = createdAt.Time

	return feedback, nil
}

// GetFeedbackByBooking получает отзыв по ID бронирования
func (r *Repository) GetFeedbackByBooking(ctx context.Context, bookingID int64) (*domain.SessionFeedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(feedbackColumns...).
		From("session_feedback").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFeedbackByBooking - build select query: %v", ErrBuildQuery, err)
	}

	var (
		fb        domain.SessionFeedback
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&fb.ID,
		&fb.BookingID,
		&fb.ParentID,
		&fb.Rating,
		&fb.Comment,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFeedbackByBooking - scan feedback: %v", ErrScanRow, err)
	}

	fb.CreatedAt = createdAt.Time

	return &fb, nil
}

// RatingSummary количество отзывов и средняя оценка по всем сессиям
func (r *Repository) RatingSummary(ctx context.Context) (int, float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)", "COALESCE(AVG(rating), 0)").
		From("session_feedback").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: RatingSummary - build select query: %v", ErrBuildQuery, err)
	}

	var (
		count int
		avg   float64
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count, &avg); err != nil {
		return 0, 0, fmt.Errorf("%w: RatingSummary - scan: %v", ErrScanRow, err)
	}

	return count, avg, nil
}
