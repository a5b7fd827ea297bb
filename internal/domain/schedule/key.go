package schedule

import (
	"fmt"
	"time"
)

// RoundKey derives the stable round identifier for a scheduled start time.
// The derivation must be identical across runs so that persisted round
// records from earlier calculations match rounds built later.
func RoundKey(start time.Time) string {
	return fmt.Sprintf("round-%d", start.UTC().UnixNano())
}
