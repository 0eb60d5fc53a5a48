package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"courtbook/config"
	"courtbook/infras/otel/mocks"
	reasonMocks "courtbook/internal/domains/reason/mocks"
	"courtbook/internal/domains/reason/model"
	"courtbook/internal/domains/reason/model/dto"
	"courtbook/internal/domains/reason/service"
	"courtbook/shared"
	cacheMocks "courtbook/shared/cache/mocks"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
)

func newService(t *testing.T) (service.Reason, *reasonMocks.MockReason, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(shared.WaitDetached)

	mockRepo := reasonMocks.NewMockReason(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestReasonService_Create(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	tests := []struct {
		name      string
		req       dto.CreateReasonRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateReasonRequest{Name: "Rain", Description: "Courts are wet"},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, reason model.Reason) error {
						assert.Equal(t, "Rain", reason.Name)
						assert.True(t, reason.Active)
						assert.Equal(t, "admin-1", reason.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "duplicate name",
			req:  dto.CreateReasonRequest{Name: "Rain"},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.CreateReasonRequest{Name: "Rain"},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			res, err := svc.Create(ctx, tt.req)

			shared.WaitDetached()

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.Name, res.Name)
		})
	}
}

func TestReasonService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reason, error) {
			assert.Equal(t, model.FieldName, params.SortBy)

			return []model.Reason{{ID: "r-1", Name: "Rain", Active: true}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, gDto.FilterGroup{})

	shared.WaitDetached()

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Reasons, 1)
}

func TestReasonService_Get(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	t.Run("cache hit", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "reason:get:r-1", gomock.Any()).
			Return(nil)

		_, err := svc.Get(context.Background(), "r-1")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "reason:get:r-2", gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reason{}, nil)

		_, err := svc.Get(context.Background(), "r-2")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})
}

func TestReasonService_Update(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	t.Run("successful update", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Frost", fields[model.FieldName])
				assert.NotContains(t, fields, model.FieldDescription)

				return nil
			})

		err := svc.Update(context.Background(), dto.UpdateReasonRequest{Name: "Frost"}, "r-1")

		shared.WaitDetached()

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateReasonRequest{Name: "Frost"}, "r-2")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReasonService_Delete(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "referenced by a block",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "r-1")

			shared.WaitDetached()

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
