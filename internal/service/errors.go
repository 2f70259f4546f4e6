package service

import "errors"

var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("no token, authorization denied")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrUnknownUser        = errors.New("user not found")
	ErrNotFound           = errors.New("note not found")
	ErrValidation         = errors.New("validation failed")
)
