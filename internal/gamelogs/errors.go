package gamelogs

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrBadConfig = errors.New("invalid generator config")
)
