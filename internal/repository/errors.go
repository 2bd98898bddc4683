package repository

import "errors"

// Sentinel errors returned by the repository layer. Services translate them
// into domain errors so business logic never sees driver errors such as
// sql.ErrNoRows.

// ErrNotFound is returned when a query for a single entity finds no rows, or
// when a scoped update or delete matched nothing.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("repository: duplicate")
