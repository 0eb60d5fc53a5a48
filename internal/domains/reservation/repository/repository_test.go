package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/infras/otel/mocks"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/reservation/model"
	"courtbook/internal/domains/reservation/repository"
	"courtbook/internal/schedule"
	"courtbook/shared/timezone"
)

var (
	day     = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	columns = []string{"id", "court_number", "booking_date", "start_hour", "end_hour", "booked_for", "booked_by", "is_short_notice", "status", "suspended_by"}
)

func newRepository(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func TestReservationRepository_FindOccupant(t *testing.T) {
	repo, mock := newRepository(t)
	slot := schedule.NewSlot(3, day, 10)

	t.Run("occupied", func(t *testing.T) {
		mock.ExpectPrepare(regexp.QuoteMeta("WHERE (reservations.court_number = $1 AND reservations.booking_date = $2 AND " +
			"reservations.start_hour = $3 AND reservations.status = $4 AND reservations.suspended_by IS NULL AND reservations.id != $5)")).
			ExpectQuery().
			WithArgs(3, "2024-06-01", 10, "active", "r-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("r-2", 3, day, 10, 11, "m-2", "m-2", false, "active", nil))

		res, err := repo.FindOccupant(context.Background(), slot, "r-1")

		require.NoError(t, err)
		assert.Equal(t, "r-2", res.ID)
		assert.Equal(t, model.StatusActive, res.Status)
		assert.False(t, res.IsSuspended())
	})

	t.Run("free slot", func(t *testing.T) {
		mock.ExpectPrepare(regexp.QuoteMeta("reservations.suspended_by IS NULL)")).
			ExpectQuery().
			WithArgs(3, "2024-06-01", 10, "active").
			WillReturnRows(sqlmock.NewRows(columns))

		res, err := repo.FindOccupant(context.Background(), slot, "")

		require.NoError(t, err)
		assert.Empty(t, res.ID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CountActive(t *testing.T) {
	repo, mock := newRepository(t)
	now := timezone.CivilOf(day, 8, 30)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(reservations.id) FROM reservations")).
		ExpectQuery().
		WithArgs("m-1", "active", true, "2024-06-01", "2024-06-01", 8, "r-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountActive(context.Background(), "m-1", true, now, "r-1")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CountActive_Error(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	_, err := repo.CountActive(context.Background(), "m-1", false, timezone.CivilOf(day, 8, 0), "")

	assert.ErrorContains(t, err, "failed to count active reservations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_FindInRange(t *testing.T) {
	repo, mock := newRepository(t)
	now := timezone.CivilOf(day, 9, 0)

	mock.ExpectPrepare(regexp.QuoteMeta("reservations.court_number IN ($1, $2)")+".*"+regexp.QuoteMeta("ORDER BY reservations.start_hour ASC, reservations.id")).
		ExpectQuery().
		WithArgs(4, 5, "2024-06-01", 10, 12, "active", "2024-06-01", "2024-06-01", 9).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("r-1", 5, day, 10, 11, "m-1", "m-1", false, "active", nil).
			AddRow("r-2", 4, day, 11, 12, "m-2", "m-3", true, "active", nil))

	res, err := repo.FindInRange(context.Background(), []int{4, 5}, day, 10, 12, now)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, schedule.NewSlot(5, day, 10), res[0].Slot())
	assert.True(t, res[1].IsShortNotice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_FindInRange_NoCourts(t *testing.T) {
	repo, mock := newRepository(t)

	res, err := repo.FindInRange(context.Background(), nil, day, 10, 12, timezone.CivilOf(day, 9, 0))

	require.NoError(t, err)
	assert.Empty(t, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_FindSuspendedBy(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("WHERE (reservations.suspended_by = $1 AND reservations.status = $2)")).
		ExpectQuery().
		WithArgs("b-1", "active").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("r-1", 5, day, 10, 11, "m-1", "m-1", false, "active", "b-1"))

	res, err := repo.FindSuspendedBy(context.Background(), "b-1")

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "b-1", res[0].SuspendingBlock())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_UpdateActiveByID(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET modified_by = $1, suspended_by = $2 WHERE (reservations.id = $3 AND reservations.status = $4)")).
		WithArgs("admin-1", "b-1", "r-1", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{
		model.FieldSuspendedBy: "b-1",
		"modified_by":          "admin-1",
	}, repository.ActiveByID("r-1"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
