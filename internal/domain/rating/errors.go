package rating

import "errors"

// Sentinel kinds for rating errors.
var (
	ErrUnknownAlgorithm = errors.New("unknown rating algorithm")
)
