package leave

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/ptr"
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
)

var leaveDate = time.Date(2024, 11, 14, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func leaveRow(status domain.LeaveStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(leaveColumns).
		AddRow(int64(1), int64(5), leaveDate, "conference", string(status), nil, nil, now, now)
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leaves (therapist_id,leave_date,reason,status)")).
		WithArgs(int64(5), leaveDate, "conference", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	l, err := repo.Create(context.Background(), &domain.Leave{
		TherapistID: 5,
		LeaveDate:   leaveDate,
		Reason:      ptr.Ptr("conference"),
		Status:      domain.LeavePending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leaves")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Leave{TherapistID: 5, LeaveDate: leaveDate, Status: domain.LeavePending})
	assert.ErrorIs(t, err, ErrLeaveAlreadyExists)
}

func TestGetByID_ForUpdateInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM leaves WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(leaveRow(domain.LeavePending))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	l, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 1)
	require.NoError(t, err)
	assert.True(t, l.IsPending())

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotPending(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE leaves SET status = $1, admin_notes = $2, processed_at = NOW(), updated_at = NOW() WHERE id = $3 AND status = $4")).
		WithArgs("APPROVED", nil, int64(1), "PENDING").
		WillReturnRows(sqlmock.NewRows(leaveColumns))

	_, err := repo.UpdateStatus(context.Background(), 1, domain.LeaveApproved, nil)
	assert.ErrorIs(t, err, ErrLeaveNotPending)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE leaves")).
		WillReturnRows(leaveRow(domain.LeaveRejected))

	l, err := repo.UpdateStatus(context.Background(), 1, domain.LeaveRejected, ptr.Ptr("short notice"))
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveRejected, l.Status)
}

func TestHasApprovedOn(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM leaves WHERE leave_date = $1 AND status = $2 AND therapist_id = $3 )")).
		WithArgs(leaveDate, "APPROVED", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasApprovedOn(context.Background(), 5, leaveDate)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestList(t *testing.T) {
	repo, mock := newMock(t)
	status := domain.LeavePending
	mock.ExpectQuery(regexp.QuoteMeta("FROM leaves WHERE status = $1 ORDER BY leave_date ASC, id ASC")).
		WithArgs("PENDING").
		WillReturnRows(leaveRow(domain.LeavePending))

	list, err := repo.List(context.Background(), domain.LeavesFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetByID_SerializationFailure(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM leaves WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, txmanager.ErrSerialization)
	assert.NotErrorIs(t, err, ErrScanRow)
}

func TestHasApprovedOn_SerializationFailure(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.HasApprovedOn(context.Background(), 5, leaveDate)
	assert.ErrorIs(t, err, txmanager.ErrSerialization)
}
