package repository

import "errors"

// ErrNotFound is returned when a row does not exist or the caller does not
// own it. Handlers map it to a 404 without distinguishing the two cases.
var ErrNotFound = errors.New("not found")
