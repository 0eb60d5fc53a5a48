package middleware_test

import (
	"courtbook/config"
	"courtbook/infras/jwt"
	"courtbook/infras/otel/mocks"
	"courtbook/permissions"
	"courtbook/shared/constant"
	"courtbook/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (chi.Router, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "courtbook"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 60

	tokens := jwt.New(cfg)
	table := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/health", Method: http.MethodGet, Skip: true},
			{Path: "/v1/blocks/", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin}},
			{Path: "/v1/reservations/mine", Method: http.MethodGet, Permissions: []string{constant.RoleUser, constant.RoleAdmin}},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(tokens, mocks.NewOtel(), table, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		member, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(member))
	}

	router := chi.NewRouter()
	router.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
	router.Get("/health", echo)
	router.Route("/v1", func(v1 chi.Router) {
		v1.Route("/blocks", func(blocks chi.Router) { blocks.Post("/", echo) })
		v1.Route("/reservations", func(reservations chi.Router) { reservations.Get("/mine", echo) })
	})

	return router, tokens
}

func bearer(t *testing.T, tokens jwt.JWT, memberID, role string) string {
	t.Helper()

	token, err := tokens.GenerateAccessToken(memberID, memberID+"@club.test", role, time.Now())
	require.NoError(t, err)

	return "Bearer " + token
}

func TestAuthRole(t *testing.T) {
	router, tokens := newAuthRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		wantCode int
		wantBody string
	}{
		{name: "skipped endpoint", method: http.MethodGet, path: "/health", wantCode: http.StatusOK},
		{name: "missing token", method: http.MethodGet, path: "/v1/reservations/mine", wantCode: http.StatusUnauthorized},
		{
			name:     "malformed token",
			method:   http.MethodGet,
			path:     "/v1/reservations/mine",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer nope"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "member reaches own reservations",
			method:   http.MethodGet,
			path:     "/v1/reservations/mine",
			header:   map[string]string{constant.RequestHeaderAuthorization: bearer(t, tokens, "m-1", constant.RoleUser)},
			wantCode: http.StatusOK,
			wantBody: "m-1",
		},
		{
			name:     "member cannot create blocks",
			method:   http.MethodPost,
			path:     "/v1/blocks/",
			header:   map[string]string{constant.RequestHeaderAuthorization: bearer(t, tokens, "m-1", constant.RoleUser)},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin creates blocks",
			method:   http.MethodPost,
			path:     "/v1/blocks/",
			header:   map[string]string{constant.RequestHeaderAuthorization: bearer(t, tokens, "a-1", constant.RoleAdmin)},
			wantCode: http.StatusOK,
			wantBody: "a-1",
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			path:     "/v1/blocks/",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "internal caller with api key",
			method:   http.MethodPost,
			path:     "/v1/blocks/",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
