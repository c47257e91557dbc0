package catalog

import "errors"

var (
	// ErrItemNotFound is returned when a stock write targets an id that
	// does not exist in the catalog.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrRemoteUnavailable is returned when a write is attempted while the
	// remote store is unreachable. Reads fall back to the mirror instead.
	ErrRemoteUnavailable = errors.New("remote catalog store unavailable")
)
