package adapter

import "errors"

var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("client unauthorized")
	ErrTokenExpired      = errors.New("remote token is expired")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("record not found on remote")
	ErrConflict          = errors.New("conflict")
	ErrRemoteUnavailable = errors.New("remote backend unavailable")
	ErrRemoteSchema      = errors.New("remote schema mismatch")

	ErrNoRemoteConfigured = errors.New("no remote backend configured")
)
