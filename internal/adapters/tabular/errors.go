package tabular

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoInputFiles   = errors.New("no gamelog files found")
	ErrFileUnreadable = errors.New("table file unreadable")
	ErrFileUnwritable = errors.New("table file unwritable")
	ErrEmptyTable     = errors.New("table file is empty")
	ErrMissingColumn  = errors.New("required column missing")
	ErrBadDate        = errors.New("unparseable game date")
)
