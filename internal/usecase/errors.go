package usecase

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPersonaNotFound = errors.New("persona not found")
	ErrJobNotFound     = errors.New("job not found")
	ErrInternal        = errors.New("internal error")
)
