package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

var halfDay = decimal.NewFromFloat(0.5)

// CalculateLeaveDays returns the day count charged against the balance
// for a date range. A half-day on a single date charges 0.5, otherwise
// the count is inclusive of both bounds. Recomputing from a stored
// request always reproduces the value charged at submission.
func CalculateLeaveDays(from, to time.Time, isHalfDay bool) decimal.Decimal {
	if isHalfDay && from.Equal(to) {
		return halfDay
	}
	days := int64(to.Sub(from).Hours()/24) + 1
	return decimal.NewFromInt(days)
}
