package allocator

import (
	"errors"
	"fmt"
)

// ErrInsufficientWeight reports that every category weight is zero or
// negative, leaving nothing to apportion against. The caller should
// re-prompt for valid weights.
var ErrInsufficientWeight = errors.New("allocator: total category weight must be positive")

// ShortfallError reports that the requested total exceeds the combined
// availability across all categories. It carries both counts so the caller
// can surface actionable feedback.
type ShortfallError struct {
	Requested int
	Available int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("allocator: requested %d questions but only %d available (need %d more)",
		e.Requested, e.Available, e.Shortfall())
}

// Shortfall returns how many questions are missing.
func (e *ShortfallError) Shortfall() int { return e.Requested - e.Available }
