package leave

import (
	"time"

	"tourhr/internal/leavetype"
)

// HasBlackoutConflict reports whether [from, to] intersects any
// blackout period. Bounds are inclusive on both sides.
func HasBlackoutConflict(from, to time.Time, periods []leavetype.BlackoutPeriod) bool {
	for _, p := range periods {
		if !from.After(p.To) && !to.Before(p.From) {
			return true
		}
	}
	return false
}
