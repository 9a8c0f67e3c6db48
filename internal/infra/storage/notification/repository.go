package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/psqlbuilder"
)

// Repository хранилище in-app уведомлений
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("user_id", "message", "send_at").
		Values(n.UserID, n.Message, n.SendAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	n.CreatedAt = createdAt.Time

	return n, nil
}

// MarkDelivered проставляет время доставки
func (r *Repository) MarkDelivered(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("delivered_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkDelivered - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// GetRecipientEmail возвращает email пользователя для доставки
func (r *Repository) GetRecipientEmail(ctx context.Context, userID int64) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("email").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: GetRecipientEmail - build select query: %v", ErrBuildQuery, err)
	}

	var email string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&email)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetRecipientEmail - scan email: %v", ErrScanRow, err)
	}

	return email, nil
}
