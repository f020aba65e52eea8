package domain

import "errors"

var (
	// ErrConfigMissing means the warehouse host or path is not configured.
	ErrConfigMissing = errors.New("warehouse configuration missing")

	// ErrDataUnavailable covers connection, query and value coercion failures.
	ErrDataUnavailable = errors.New("danger zone data unavailable")

	// ErrInvalidInput means a point cannot take part in a summary.
	ErrInvalidInput = errors.New("invalid danger zone input")
)
