// Package fine computes overdue penalties from date deltas. It is pure
// computation: no I/O, no clock reads, fully deterministic.
package fine

import "time"

const secondsPerDay = 86400

// Compute returns the fine amount and the number of whole overdue days for
// a loan due at dueAt and returned at returnAt, charged at dailyRate per
// day.
//
// A return at or before the due instant costs nothing. Past the due
// instant, days are counted with a ceiling: one second late is already one
// full overdue day. There is no upper cap on the amount.
func Compute(dueAt, returnAt time.Time, dailyRate float64) (amount float64, overdueDays int) {
	if !returnAt.After(dueAt) {
		return 0, 0
	}

	late := returnAt.Sub(dueAt)
	overdueDays = int(late / (secondsPerDay * time.Second))
	if late%(secondsPerDay*time.Second) > 0 {
		overdueDays++
	}

	return float64(overdueDays) * dailyRate, overdueDays
}
