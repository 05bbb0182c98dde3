package domain

import "errors"

var (
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrNotFound is returned for unknown accounts or credential pairs.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthenticated is returned when an operation runs without a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConstraintViolation is returned when an entry references a missing account.
	ErrConstraintViolation = errors.New("constraint violation")
)
