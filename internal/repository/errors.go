package repository

import "errors"

// ErrNotFound indicates the requested record does not exist. Repositories
// wrap it with the entity name; callers match with errors.Is.
var ErrNotFound = errors.New("not found")
