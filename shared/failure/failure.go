package failure

import (
	"errors"
	"net/http"
)

// Rejection reasons are stable identifiers clients branch on.
const (
	ReasonPastSlot                   = "past_slot"
	ReasonSlotConflict               = "slot_conflict"
	ReasonSlotBlocked                = "slot_blocked"
	ReasonLimitExceeded              = "limit_exceeded"
	ReasonCancellationWindowViolated = "cancellation_window_violated"
	ReasonShortNoticeImmutable       = "short_notice_immutable"
	ReasonNotFound                   = "not_found"
	ReasonAlreadyCancelled           = "already_cancelled"
	ReasonReservationSuspended       = "reservation_suspended"
)

// Reasons that describe a clash with existing state map to 409, the rest to 422.
var reasonCodes = map[string]int{
	ReasonSlotConflict:         http.StatusConflict,
	ReasonSlotBlocked:          http.StatusConflict,
	ReasonAlreadyCancelled:     http.StatusConflict,
	ReasonReservationSuspended: http.StatusConflict,
	ReasonNotFound:             http.StatusNotFound,
}

// Failure is an error with an HTTP status. Business rejections also carry a
// Reason and structured Detail.
type Failure struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Reason  string         `json:"reason,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func (e *Failure) Error() string {
	return e.Message
}

var (
	InvalidPageParam        = New(http.StatusBadRequest, "invalid page parameter")
	InvalidLimitParam       = New(http.StatusBadRequest, "invalid limit parameter")
	ForbiddenError          = New(http.StatusForbidden, "You don't have the required permissions")
	ResourceRestrictedError = New(http.StatusForbidden, "You don't have permission to access this resource")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// BadRequest wraps a validation error. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

func NotFound(message string) error {
	return &Failure{Code: http.StatusNotFound, Message: message, Reason: ReasonNotFound}
}

// Rejected builds a business rejection whose status follows from reason.
func Rejected(reason, message string, detail map[string]any) error {
	code, ok := reasonCodes[reason]
	if !ok {
		code = http.StatusUnprocessableEntity
	}

	return &Failure{Code: code, Message: message, Reason: reason, Detail: detail}
}

// GetCode is 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func GetReason(err error) string {
	if fail, ok := as(err); ok {
		return fail.Reason
	}

	return ""
}

func IsReason(err error, reason string) bool {
	return reason != "" && GetReason(err) == reason
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}
