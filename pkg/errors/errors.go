package errors

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when an integration is called without the
// configuration it needs.
var ErrNotConfigured = errors.New("integration not configured")

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when a caller fails authentication
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrRemote is returned when a remote API answers with a non-success status
type ErrRemote struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *ErrRemote) Error() string {
	return fmt.Sprintf("%s API error: status %d, body: %s", e.Service, e.StatusCode, e.Body)
}

// NotConfigured wraps ErrNotConfigured with the name of the missing setting.
func NotConfigured(setting string) error {
	return fmt.Errorf("%s: %w", setting, ErrNotConfigured)
}
