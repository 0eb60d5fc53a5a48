package response

import (
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/shared/logger"
	"encoding/json"
	"errors"
	"net/http"
)

// Data wraps every successful payload.
type Data[T any] struct {
	Data T `json:"data"`
}

// Error carries the failure message and, for business rejections, a stable reason and
// structured detail.
type Error struct {
	Error  string         `json:"error"`
	Reason string         `json:"reason,omitempty"`
	Detail map[string]any `json:"detail,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

var internalError = []byte(`{"error":"Internal Server Error"}`)

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: payload})
}

// WithError renders err. Errors that are not failures are reported as internal
// errors without leaking their text.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		write(writer, http.StatusInternalServerError, Error{Error: http.StatusText(http.StatusInternalServerError)})

		return
	}

	write(writer, fail.Code, Error{Error: fail.Message, Reason: fail.Reason, Detail: fail.Detail})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// write never sends a partial body: a payload that cannot be encoded becomes a 500.
func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code, body = http.StatusInternalServerError, internalError
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
