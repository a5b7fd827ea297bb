package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrNoSeasons = errors.New("no seasons to schedule")
)
