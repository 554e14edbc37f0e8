package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConflict     = errors.New("domain: conflict")
	ErrNotTrashed   = errors.New("domain: not in trash")
	ErrUnauthorized = errors.New("domain: unauthorized")
)
