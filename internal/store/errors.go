package store

import "errors"

// Sentinel errors shared by every store. Handlers map these to HTTP
// statuses; stores wrap them with context via fmt.Errorf and %w.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrValidation = errors.New("invalid input")
)
