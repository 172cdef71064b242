package features

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoRecords           = errors.New("no game records to process")
	ErrNoQualifyingPlayers = errors.New("no players meet the minimum game count")
)
