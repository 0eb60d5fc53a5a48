package repository_test

import (
	"context"
	"courtbook/infras/otel/mocks"
	"courtbook/infras/postgres"
	"courtbook/shared/dto"
	"courtbook/shared/repository"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type court struct {
	ID     string `db:"id"`
	Number int    `db:"number"`
	Name   string `db:"name"`
}

func newRepository(t *testing.T) (repository.Repository[court], *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[court]("court", "courts", "id", conn, mocks.NewOtel()), sqlxDB, mock
}

func TestRepository_Insert(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courts (id, number, name) VALUES ($1, $2, $3)")).
		WithArgs("c-1", 1, "Centre").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), court{ID: "c-1", Number: 1, Name: "Centre"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	repo, _, mock := newRepository(t)
	filter := dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "c-1", Operator: dto.FilterOperatorEq, Table: "courts"}}}

	t.Run("found", func(t *testing.T) {
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT courts.id, courts.number, courts.name FROM courts")).
			ExpectQuery().
			WithArgs("c-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "number", "name"}).AddRow("c-1", 1, "Centre"))

		res, err := repo.Get(context.Background(), filter)

		require.NoError(t, err)
		assert.Equal(t, court{ID: "c-1", Number: 1, Name: "Centre"}, res)
	})

	t.Run("not found returns zero value", func(t *testing.T) {
		mock.ExpectPrepare("SELECT").
			ExpectQuery().
			WithArgs("c-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "number", "name"}))

		res, err := repo.Get(context.Background(), filter)

		require.NoError(t, err)
		assert.Empty(t, res.ID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, _, mock := newRepository(t)
	filter := dto.FilterGroup{Filters: []any{dto.Filter{Field: "name", Value: "Centre", Operator: dto.FilterOperatorEq}}}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE courts SET name = $1, number = $2 WHERE (name = $3)")).
		WithArgs("Court One", 1, "Centre").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"number": 1, "name": "Court One"}, filter)
	assert.NoError(t, err)

	err = repo.Update(context.Background(), map[string]any{"name": "x"}, dto.FilterGroup{})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(courts.id) FROM courts")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UsesTransactionFromContext(t *testing.T) {
	repo, db, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM courts").
		WithArgs("c-1").
		WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	ctx := postgres.WithTx(context.Background(), tx)
	err = repo.Delete(ctx, dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "c-1", Operator: dto.FilterOperatorEq}}})

	assert.Error(t, err)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll(t *testing.T) {
	repo, _, mock := newRepository(t)
	params := dto.QueryParams{Page: 3, Limit: 2, SortBy: "number", SortDir: dto.SortDirDesc}

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT courts.id, courts.name FROM courts ORDER BY courts.number DESC, courts.id LIMIT $1 OFFSET $2")).
		ExpectQuery().
		WithArgs(2, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c-5", "Five"))

	res, err := repo.GetAll(context.Background(), params, dto.FilterGroup{}, "id", "name")

	require.NoError(t, err)
	assert.Equal(t, []court{{ID: "c-5", Name: "Five"}}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Exist(t *testing.T) {
	repo, _, mock := newRepository(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM courts WHERE (number = $1))")).
		ExpectQuery().
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), dto.FilterGroup{Filters: []any{dto.Filter{Field: "number", Value: 7, Operator: dto.FilterOperatorEq}}})

	require.NoError(t, err)
	assert.True(t, exist)
	assert.NoError(t, mock.ExpectationsWereMet())
}
