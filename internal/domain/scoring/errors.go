package scoring

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownCategory    = errors.New("unknown scoring category")
	ErrUnknownSystem      = errors.New("unknown scoring system")
	ErrRulesetsUnreadable = errors.New("scoring rulesets file unreadable")
)
