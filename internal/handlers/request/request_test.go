package request_test

import (
	"context"
	"courtbook/internal/handlers/request"
	"courtbook/internal/schedule"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor(t *testing.T) {
	_, err := request.Actor(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "m-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	actor, err := request.Actor(ctx)
	require.NoError(t, err)
	assert.Equal(t, schedule.Actor{MemberID: "m-1", Admin: true}, actor)
}

func TestNow(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	clock := timezone.Fixed(berlin, time.Date(2024, time.June, 1, 7, 30, 0, 0, time.UTC))
	r := httptest.NewRequest(http.MethodGet, "/v1/availability?at=2024-06-01T12:00:00Z", nil)

	t.Run("members are evaluated at the wall clock", func(t *testing.T) {
		now, err := request.Now(r, clock, schedule.Actor{MemberID: "m-1"})

		require.NoError(t, err)
		assert.Equal(t, "2024-06-01 09:30", now.String())
	})

	t.Run("admins may pin the instant", func(t *testing.T) {
		now, err := request.Now(r, clock, schedule.Actor{MemberID: "a-1", Admin: true})

		require.NoError(t, err)
		assert.Equal(t, "2024-06-01 14:00", now.String())
	})

	t.Run("malformed instant", func(t *testing.T) {
		bad := httptest.NewRequest(http.MethodGet, "/v1/availability?at=noon", nil)

		_, err := request.Now(bad, clock, schedule.Actor{MemberID: "a-1", Admin: true})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
