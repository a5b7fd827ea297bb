package store

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnknownTeam    = errors.New("team not found")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrDatasetLoad    = errors.New("dataset load failed")
	ErrDatasetInvalid = errors.New("dataset invalid")
)
