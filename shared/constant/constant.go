package constant

import "time"

type contextKey string

// Identity of the authenticated caller, stored by the auth middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// Roles carried in access tokens. Admin and superadmin share administrative rights.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const PathHealth = "/health"

// Paging and sorting query parameters.
const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

// Path and query parameters of the booking endpoints.
const (
	RequestParamID        = "id"
	RequestParamCourt     = "court"
	RequestParamDate      = "date"
	RequestParamStartTime = "start_time"
	RequestParamBookedFor = "booked_for"
	RequestParamStatus    = "status"
	RequestParamTemporary = "temporary"
	RequestParamRemoved   = "removed"
	RequestParamActive    = "active"
	RequestParamName      = "name"
)

// Audit columns shared by every table.
const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// SQLSTATE codes the repositories react to.
const (
	PqErrorCodeUniqueViolation      = "23505"
	PqErrorCodeFkViolation          = "23503"
	PqErrorCodeSerializationFailure = "40001"
	PqErrorCodeDeadlockDetected     = "40P01"
)

// DateFormat renders audit timestamps.
const DateFormat = time.RFC3339

// Tracer scope names, one per layer.
const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelPublisherScope      = "publisher"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderAPIKey        = "X-API-Key"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderRequestID     = "X-Request-ID"
	RequestHeaderForwardedFor  = "X-Forwarded-For"
	RequestHeaderRealIP        = "X-Real-IP"

	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"

	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvDevelopment = "development"

const (
	Asterix = "*"
	Empty   = ""
)
