package employee

import "errors"

var (
	ErrNotFound   = errors.New("employee not found")
	ErrEmailTaken = errors.New("employee email already in use")
	ErrInvalid    = errors.New("invalid employee")
)
