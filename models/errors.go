package models

import "errors"

// Sentinel errors for store and auth operations. Handlers map these onto
// HTTP statuses and the API's error strings.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateTask      = errors.New("task id already exists")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("forbidden")
)
