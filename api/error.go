package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the JSON error body of every failed request.
type Error struct {
	HTTPStatus int
	ErrorCode  string
	Message    string
	// Details are extra machine-readable fields, like per-field validation messages.
	Details  map[string]interface{}
	Original error
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s: [%d] %s", e.ErrorCode, e.HTTPStatus, e.Message)
	if e.Original != nil {
		s += " (Original: " + e.Original.Error() + ")"
	}
	return s
}

func (e Error) Unwrap() error {
	return e.Original
}

func (e Error) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"http_status": e.HTTPStatus,
		"error_code":  e.ErrorCode,
		"message":     e.Message,
	}
	if len(e.Details) > 0 {
		m["details"] = e.Details
	}
	return m
}

func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

// WithMessage returns a copy of e with a custom message.
func (e Error) WithMessage(format string, args ...interface{}) Error {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WithDetail returns a copy of e with key set in its details.
func (e Error) WithDetail(key string, value interface{}) Error {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

func NewError(httpStatus int, errorCode string, original ...error) Error {
	e := Error{
		ErrorCode:  errorCode,
		HTTPStatus: httpStatus,
		Message:    http.StatusText(httpStatus),
	}
	if len(original) > 0 {
		e.Original = original[0]
	}
	return e
}

func NewInternalError(original ...error) Error {
	return NewError(http.StatusInternalServerError, "internal_error", original...)
}

// NewBadRequest is a 400 whose message is the original error's text.
func NewBadRequest(errorCode string, original error) Error {
	e := NewError(http.StatusBadRequest, errorCode, original)
	if original != nil {
		e.Message = original.Error()
	}
	return e
}
