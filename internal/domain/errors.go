package domain

import "errors"

// Errores compartidos entre repositorios, servicios y la capa HTTP.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidSession     = errors.New("invalid session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrRateLimited        = errors.New("too many attempts")
	ErrUpstream           = errors.New("upstream service error")
)
