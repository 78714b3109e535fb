package freq

import "errors"

var (
	// ErrStoreNotFound is returned by Store.Load when the store file does not exist.
	ErrStoreNotFound = errors.New("frequency store not found")

	// ErrCorruptStore is returned when the store file exists but does not
	// contain a valid record list.
	ErrCorruptStore = errors.New("frequency store is corrupt")
)
