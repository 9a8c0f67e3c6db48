package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionManager(dbmetrics.Wrap(db, nil)), mock
}

func TestDoSerializable_Commit(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.TxFromContext(ctx)
		_, err := tx.ExecContext(ctx, "INSERT INTO bookings (id) VALUES ($1)", 1)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	mgr, mock := newManager(t)
	errBusiness := errors.New("slot taken")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_SerializationFailure(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.True(t, IsSerializationFailure(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginError(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}
