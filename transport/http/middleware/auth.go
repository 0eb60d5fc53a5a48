package middleware

import (
	"context"
	"courtbook/config"
	"courtbook/infras/jwt"
	"courtbook/infras/otel"
	"courtbook/permissions"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/transport/http/response"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type internalCallerKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRole struct {
	tokens jwt.JWT
	otel   otel.Otel
	table  *permissions.PermissionData
	apiKey string
}

func NewAuthRoleMiddleware(tokens jwt.JWT, otl otel.Otel, table *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRole{
		tokens: tokens,
		otel:   otl,
		table:  table,
		apiKey: cfg.App.APIKey,
	}
}

// tokenMessages maps token validation errors to the text members see.
var tokenMessages = []struct {
	err     error
	message string
}{
	{err: jwt.ErrExpiredToken, message: "Token has expired"},
	{err: jwt.ErrInvalidClaim, message: "Invalid token claims"},
}

// Auth verifies the bearer access token and stores the caller's identity in the
// request context. Endpoints marked skip in the permission table pass through.
func (m *authRole) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if m.skipped(request) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       routePath(request),
			"http.method":     request.Method,
		})

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			deny(writer, scope, failure.Unauthorized(err.Error()))

			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			deny(writer, scope, failure.Unauthorized(tokenMessage(err)))

			return
		}

		ctx := request.Context()
		for key, value := range map[any]string{
			constant.ContextKeyUserID:    claims.MemberID,
			constant.ContextKeyUserEmail: claims.Email,
			constant.ContextKeyUserRole:  claims.Role,
			constant.ContextKeyTokenID:   claims.ID,
		} {
			ctx = context.WithValue(ctx, key, value)
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC rejects callers whose role is not listed for the endpoint. It reads the
// role Auth stored, so it must run after Auth.
func (m *authRole) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.table == nil {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		if m.skipped(request) {
			next.ServeHTTP(writer, request)

			return
		}

		endpoint := m.table.FindPermissions(routePath(request), request.Method)
		role, _ := request.Context().Value(constant.ContextKeyUserRole).(string)

		if !endpoint.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": endpoint.Permissions,
			})
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests carrying the configured internal key so Auth and RBAC let
// them through. A request with a wrong key is refused outright.
func (m *authRole) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), internalCallerKey{}, true)))
	})
}

func (m *authRole) skipped(request *http.Request) bool {
	if internal, _ := request.Context().Value(internalCallerKey{}).(bool); internal {
		return true
	}

	if m.table == nil {
		return false
	}

	return m.table.Skip || m.table.FindPermissions(routePath(request), request.Method).Skip
}

func deny(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

func tokenMessage(err error) string {
	for _, known := range tokenMessages {
		if errors.Is(err, known.err) {
			return known.message
		}
	}

	return "Invalid token"
}

// routePath resolves the request to its chi route pattern, the key of the permission table.
func routePath(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}
