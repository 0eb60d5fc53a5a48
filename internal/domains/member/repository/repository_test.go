package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/infras/otel/mocks"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/member/repository"
)

func TestMemberRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel())

	mock.ExpectPrepare(regexp.QuoteMeta("FROM members")).
		ExpectQuery().
		WithArgs("m-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "active"}).AddRow("m-1", "Ada", "ada@example.com", true))

	member, err := repo.GetByID(context.Background(), "m-1")

	require.NoError(t, err)
	assert.Equal(t, "Ada", member.Name)
	assert.True(t, member.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
