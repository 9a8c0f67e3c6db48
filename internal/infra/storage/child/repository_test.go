package child

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO children (parent_id,name,age,address,condition,notes)")).
		WithArgs(int64(10), "Masha", 6, nil, "autism", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	c, err := repo.Create(context.Background(), &domain.Child{
		ParentID:  10,
		Name:      "Masha",
		Age:       6,
		Condition: ptr.Ptr("autism"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM children WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(childColumns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestListByParent(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM children WHERE parent_id = $1 ORDER BY id ASC")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(childColumns).
			AddRow(int64(1), int64(10), "Masha", 6, nil, nil, nil, now, now).
			AddRow(int64(2), int64(10), "Petya", 9, "Lenina 1", nil, "likes trains", now, now))

	list, err := repo.ListByParent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Address)
	require.NotNil(t, list[1].Notes)
	assert.Equal(t, "likes trains", *list[1].Notes)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM children WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrChildNotFound)
}
