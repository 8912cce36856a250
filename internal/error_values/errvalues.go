package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrForbidden        = errors.New("identity doesn't match token owner")

	ErrValidation           = errors.New("validation error")
	ErrAuthRequired         = errors.New("authorization required")
	ErrStore                = errors.New("mood store error")
	ErrSubmissionInProgress = errors.New("submission already in progress")
)
