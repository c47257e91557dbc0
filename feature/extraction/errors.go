package extraction

import "errors"

var (
	// ErrTimeout is returned when the recognition service does not answer
	// within the configured timeout.
	ErrTimeout = errors.New("invoice extraction timed out")

	// ErrNetwork is returned on transport failures or non-success statuses
	// from the recognition service.
	ErrNetwork = errors.New("invoice extraction transport failure")

	// ErrParse is returned when the recognition response is not valid
	// structured data.
	ErrParse = errors.New("invoice extraction returned unparsable data")
)
