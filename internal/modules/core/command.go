package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Unit struct{}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("entity not found")
	ErrConflict           = errors.New("conflict")
)

type CommandError struct {
	Payload    interface{}
	StatusCode int
	Reason     *string
}

type CommandErrorOption func(*CommandError)

func WithReason(reason string) CommandErrorOption {
	return func(e *CommandError) {
		e.Reason = &reason
	}
}

func NewCommandError(statusCode int, payload interface{}, opts ...CommandErrorOption) CommandError {
	e := CommandError{
		StatusCode: statusCode,
		Payload:    payload,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

// CommandErrorFrom picks the status code for err from the sentinel it wraps.
// Errors that are already a CommandError are returned unchanged.
func CommandErrorFrom(err error, opts ...CommandErrorOption) CommandError {
	var commandErr CommandError
	if errors.As(err, &commandErr) {
		return commandErr
	}

	return NewCommandError(StatusCode(err), err, opts...)
}

func StatusCode(err error) int {
	var commandErr CommandError
	switch {
	case errors.As(err, &commandErr):
		return commandErr.StatusCode
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (r CommandError) Error() string {
	var values struct {
		Payload    interface{}
		StatusCode int
		Reason     string
	}

	values.Payload = r.Payload
	values.StatusCode = r.StatusCode

	if r.Reason != nil {
		values.Reason = *r.Reason
	}

	return fmt.Sprintf("%+v", values)
}

func (r CommandError) Unwrap() error {
	if err, ok := r.Payload.(error); ok {
		return err
	}
	return nil
}

// MarshalJSON never exposes the payload of a server error.
func (r CommandError) MarshalJSON() ([]byte, error) {
	var body struct {
		StatusCode int    `json:"status"`
		Error      string `json:"error"`
		Reason     string `json:"reason,omitempty"`
	}

	body.StatusCode = r.StatusCode

	if r.StatusCode >= http.StatusInternalServerError {
		body.Error = http.StatusText(r.StatusCode)
		return json.Marshal(body)
	}

	if r.Reason != nil {
		body.Reason = *r.Reason
	}

	switch p := r.Payload.(type) {
	case nil:
		body.Error = http.StatusText(r.StatusCode)
	case error:
		body.Error = p.Error()
	case string:
		body.Error = p
	default:
		body.Error = fmt.Sprintf("%v", p)
	}

	return json.Marshal(body)
}
