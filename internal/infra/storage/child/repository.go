package child

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/psqlbuilder"
)

var childColumns = []string{
	"id",
	"parent_id",
	"name",
	"age",
	"address",
	"condition",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей детей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория детей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль ребёнка
func (r *Repository) Create(ctx context.Context, child *domain.Child) (*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("children").
		Columns("parent_id", "name", "age", "address", "condition", "notes").
		Values(child.ParentID, child.Name, child.Age, child.Address, child.Condition, child.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&child.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	child.CreatedAt = createdAt.Time
	child.UpdatedAt = updatedAt.Time

	return child, nil
}

// GetByID получает профиль ребёнка по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(childColumns...).
		From("children").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	child, err := scanChild(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan child: %v", ErrScanRow, err)
	}

	return child, nil
}

// ListByParent возвращает детей родителя
func (r *Repository) ListByParent(ctx context.Context, parentID int64) ([]*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(childColumns...).
		From("children").
		Where(squirrel.Eq{"parent_id": parentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByParent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByParent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	children := make([]*domain.Child, 0)
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByParent - scan row: %v", ErrScanRow, err)
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByParent - rows error: %v", ErrScanRow, err)
	}

	return children, nil
}

// Update обновляет профиль ребёнка
func (r *Repository) Update(ctx context.Context, child *domain.Child) (*domain.Child, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("children").
		Set("name", child.Name).
		Set("age", child.Age).
		Set("address", child.Address).
		Set("condition", child.Condition).
		Set("notes", child.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": child.ID}).
		Suffix("RETURNING " + strings.Join(childColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanChild(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет профиль ребёнка
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("children").
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
		return ErrChildNotFound
	}

	return nil
}

// Count общее количество профилей
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("children").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(row rowScanner) (*domain.Child, error) {
	var c domain.Child
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.ParentID,
		&c.Name,
		&c.Age,
		&c.Address,
		&c.Condition,
		&c.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
