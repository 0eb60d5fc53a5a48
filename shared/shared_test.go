package shared_test

import (
	"context"
	"courtbook/shared"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	"courtbook/shared/dto"
	"courtbook/shared/failure"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBoolParam(t *testing.T) {
	tests := []struct {
		query    string
		expected *bool
		wantErr  bool
	}{
		{query: "", expected: nil},
		{query: "active=true", expected: boolPtr(true)},
		{query: "active=0", expected: boolPtr(false)},
		{query: "active=F", expected: boolPtr(false)},
		{query: "active=maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			value, err := shared.BoolParam(query, "active")
			if tt.wantErr {
				assert.EqualError(t, err, "active must be a boolean")
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 1, shared.CalculateTotalPage(-3, 10))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(20, 10))
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name     string `db:"name"`
		Active   *bool  `db:"active"`
		Untagged string
		Empty    string `db:"description"`
	}

	result := shared.TransformFields(updateRequest{Name: "Rain", Active: boolPtr(false), Untagged: "x"}, "admin-1")

	assert.Equal(t, "Rain", result["name"])
	assert.Equal(t, boolPtr(false), result["active"])
	assert.NotContains(t, result, "description")
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 4)
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "reservations")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "123", Operator: dto.FilterOperatorEq, Table: "reservations"},
		},
	}, result)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "reservation:get:abc", shared.BuildCacheKey("reservation:get", "abc"))
	assert.Equal(t, "reason:gets", shared.BuildCacheKey("reason:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "booking_date", SortDir: dto.SortDirAsc}
	filterA := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorEq}}}
	filterB := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorEq}}}

	keyA := shared.BuildCacheKeyWithQuery("reservation:gets", params, filterA)

	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("reservation:gets", params, filterA))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("reservation:gets", params, filterB))
	assert.Contains(t, keyA, "reservation:gets:1:10:booking_date:ASC:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "block:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "block:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "block:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "block:count")
}

func boolPtr(b bool) *bool {
	return &b
}

type detachKey struct{}

func TestDetach(t *testing.T) {
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), detachKey{}, "req-1"))
	cancel()

	var (
		value any
		alive error
	)

	shared.Detach(ctx, func(c context.Context) {
		value = c.Value(detachKey{})
		alive = c.Err()
	})
	shared.WaitDetached()

	assert.Equal(t, "req-1", value)
	assert.NoError(t, alive)
}
