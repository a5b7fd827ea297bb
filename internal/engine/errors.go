package engine

import "errors"

var (
	// ErrValidation indicates the engine was constructed without a
	// required source.
	ErrValidation = errors.New("engine requires game, roster, player and checkpoint sources")

	// ErrMissingData indicates a roster or player referenced by a
	// scheduled game could not be resolved. The run aborts rather than
	// rate games against incomplete rosters.
	ErrMissingData = errors.New("referenced data is missing")
)
