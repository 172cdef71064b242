package resolve

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoKnownNames    = errors.New("known-names roster is empty")
	ErrNoObservedNames = errors.New("observed-names list is empty")
)
