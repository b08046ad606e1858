package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is a rule violation that maps straight to an HTTP response.
type BusinessError struct {
	Status  int
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Message
}

func New(status int, code, message string) error {
	return BusinessError{Status: status, Code: code, Message: message}
}

func ErrBadRequest(code, message string) error {
	return New(http.StatusBadRequest, code, message)
}

func ErrUnauthorized(code, message string) error {
	return New(http.StatusUnauthorized, code, message)
}

func ErrForbidden(code, message string) error {
	return New(http.StatusForbidden, code, message)
}

func ErrNotFound(code, message string) error {
	return New(http.StatusNotFound, code, message)
}

func ErrConflict(code, message string) error {
	return New(http.StatusConflict, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}
