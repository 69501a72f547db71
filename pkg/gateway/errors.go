package gateway

import "errors"

var (
	// ErrUnauthorized is returned when the bearer credential is rejected
	ErrUnauthorized = errors.New("unauthorized: credential rejected")

	// ErrNotFound is returned when the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable is returned on network failures and 5xx responses
	ErrUnavailable = errors.New("service unavailable")

	// ErrInvalidRequest is returned when the service rejects the request payload
	ErrInvalidRequest = errors.New("invalid request")
)
