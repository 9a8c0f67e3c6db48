package therapist

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
	"github.com/m04kA/TheraConnect-BookingService/pkg/txmanager"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func therapistRow(times string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(therapistColumns).
		AddRow(int64(1), int64(100), "Anna Ivanova", "speech", 50.0, "active", times, now, now)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM therapists WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(therapistRow("{09:00,10:00}"))

	th, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.TherapistActive, th.Status)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, th.ActivatedTimes)
	assert.True(t, th.OffersTime("10:00"))
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM therapists WHERE user_id = $1")).
		WillReturnRows(sqlmock.NewRows(therapistColumns))

	_, err := repo.GetByUserID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestActivateTimes(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE therapists SET activated_times = $1, updated_at = NOW() WHERE id = $2 AND cardinality(activated_times) = 0 RETURNING")).
		WillReturnRows(therapistRow("{09:00,14:00}"))

	th, err := repo.ActivateTimes(context.Background(), 1, []types.TimeString{"09:00", "14:00"})
	require.NoError(t, err)
	assert.Len(t, th.ActivatedTimes, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateTimes_AlreadySet(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE therapists")).
		WillReturnRows(sqlmock.NewRows(therapistColumns))

	_, err := repo.ActivateTimes(context.Background(), 1, []types.TimeString{"09:00"})
	assert.ErrorIs(t, err, ErrTimesAlreadySet)
}

func TestList_FiltersByStatus(t *testing.T) {
	repo, mock := newMock(t)
	status := domain.TherapistActive
	mock.ExpectQuery(regexp.QuoteMeta("FROM therapists WHERE status = $1 ORDER BY full_name ASC, id ASC")).
		WithArgs("active").
		WillReturnRows(therapistRow("{}"))

	list, err := repo.List(context.Background(), domain.TherapistsFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].HasActivatedTimes())
}

func TestCountByStatus(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM therapists GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("active", 3).AddRow("pending", 1))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[domain.TherapistActive])
	assert.Equal(t, 1, counts[domain.TherapistPending])
}

func TestGetByID_SerializationFailure(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM therapists WHERE id = $1")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, txmanager.ErrSerialization)
}
