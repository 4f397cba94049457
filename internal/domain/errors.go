package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a required search anchor (city, zone or coordinates) could not be resolved.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals malformed caller input (coordinates, dates, radius, missing city).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream signals a record store or geocoding provider failure.
	ErrUpstream = errors.New("upstream error")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)

// UpstreamError wraps ErrUpstream with the failing provider and HTTP status (0 for transport errors).
type UpstreamError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s returned %d: %s", ErrUpstream.Error(), e.Provider, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", ErrUpstream.Error(), e.Provider, e.Detail)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// NewUpstreamError creates an upstream error for the given provider.
func NewUpstreamError(provider string, statusCode int, detail string) error {
	return &UpstreamError{Provider: provider, StatusCode: statusCode, Detail: detail}
}

// InvalidInputf formats a message and wraps it with ErrInvalidInput.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
