package reason_test

import (
	"context"
	"courtbook/infras/otel/mocks"
	"courtbook/internal/domains/reason/model/dto"
	svcMocks "courtbook/internal/domains/reason/service/mocks"
	"courtbook/internal/handlers/reason"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (chi.Router, *svcMocks.MockReason) {
	t.Helper()

	service := svcMocks.NewMockReason(gomock.NewController(t))
	handler := reason.New(service, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, service
}

func TestHandler_CreateReason(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().
		Create(gomock.Any(), dto.CreateReasonRequest{Name: "Maintenance"}).
		Return(dto.ReasonResponse{ID: "rs-1", Name: "Maintenance", Active: true}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reasons/", strings.NewReader(`{"name":"Maintenance"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active":true`)
}

func TestHandler_GetReasons(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReasonsResponse, error) {
			assert.Len(t, filter.Filters, 1)

			return dto.GetReasonsResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reasons/?active=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_DeleteReason(t *testing.T) {
	router, service := newRouter(t)

	service.EXPECT().Delete(gomock.Any(), "rs-1").Return(failure.Conflict("reason is referenced by a block"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/reasons/rs-1", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
