package database

import "errors"

var (
	// ErrDatabaseNotFound is returned when opening a database that does not
	// exist without CreateIfNotExists.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrRunNotFound is returned when a run ID has no row.
	ErrRunNotFound = errors.New("run not found")
)
