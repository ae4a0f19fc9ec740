package interfaces

import "errors"

// Sentinel errors shared by all repository implementations.
var (
	// ErrConditionFailed means a conditional write found the row in a state
	// that no longer satisfies the guard (including a lost compare-and-set
	// race). The write was not applied.
	ErrConditionFailed = errors.New("conditional write failed")
)
