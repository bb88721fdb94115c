package storage

import "errors"

// ErrNotFound is returned when a requested row does not exist or is not
// visible to the requesting identity.
var ErrNotFound = errors.New("storage: not found")
